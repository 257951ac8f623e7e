package loader

import (
	"os"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	_ "github.com/joho/godotenv/autoload"
)

// NewDatadogClient builds a Datadog API client. Keys are read from DD_API_KEY
// and DD_APPLICATION_KEY.
func NewDatadogClient() *datadog.APIClient {
	configuration := datadog.NewConfiguration()
	configuration.AddDefaultHeader("DD-APPLICATION-KEY", os.Getenv("DD_APPLICATION_KEY"))
	return datadog.NewAPIClient(configuration)
}

// DatadogConfigured reports whether the Datadog keys are present in the environment.
func DatadogConfigured() bool {
	return os.Getenv("DD_API_KEY") != "" && os.Getenv("DD_APPLICATION_KEY") != ""
}
