package loader

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/datasift/internal/record"
)

// DatadogSource selects the logs a Datadog-backed dataset is built from.
type DatadogSource struct {
	Query string
	// Interval is a ValidTimeIntervals name; empty means DefaultInterval.
	Interval string
	// Severity is a ValidLogSeverities name; empty means ALL.
	Severity string
}

// LoadDatadog fetches the logs matching src over its time interval and turns
// each one into a record.
func LoadDatadog(ctx context.Context, client *datadog.APIClient, src DatadogSource) ([]record.Record, error) {
	query := src.Query
	if query == "" {
		query = "*"
	}
	duration, err := ParseInterval(src.Interval)
	if err != nil {
		return nil, err
	}

	tr := NewDurationRange(duration)
	log.Info().
		Str("query", query).
		Str("start", tr.Start().String()).
		Str("end", tr.End().String()).
		Msg("Loading logs within time range")

	logs, err := FetchLogs(ctx, client, tr.Start(), tr.End(), query)
	if err != nil {
		return nil, err
	}

	records := LogRecords(logs, src.Severity)
	if len(records) == 0 {
		return nil, &LoadError{Source: "datadog:" + query, Index: -1, Err: ErrEmpty}
	}
	return records, nil
}

// FetchLogs pages through the Datadog logs API until the cursor runs out.
func FetchLogs(ctx context.Context, client *datadog.APIClient, from, to time.Time, query string) ([]datadogV2.Log, error) {
	api := datadogV2.NewLogsApi(client)
	ddCtx := datadog.NewDefaultContext(ctx)

	var allLogs []datadogV2.Log
	var cursor *string

	for {
		params := datadogV2.NewListLogsGetOptionalParameters()
		order := datadogV2.LOGSSORT_TIMESTAMP_ASCENDING
		params.Sort = &order
		params.FilterFrom = &from
		params.FilterTo = &to
		params.FilterQuery = &query

		if cursor != nil {
			params.PageCursor = cursor
		}

		resp, _, err := api.ListLogsGet(ddCtx, *params)
		if err != nil {
			return allLogs, fmt.Errorf("list datadog logs: %w", err)
		}

		allLogs = append(allLogs, resp.Data...)

		if resp.Meta == nil || resp.Meta.Page == nil || resp.Meta.Page.After == nil {
			break
		}

		after := *resp.Meta.Page.After
		if after == "" {
			break
		}
		cursor = &after
	}

	log.Info().
		Int("logCount", len(allLogs)).
		Msg("Successfully retrieved logs from DataDog")

	return allLogs, nil
}

// LogRecords flattens logs into records. Reserved attributes come first
// (id, status, host, service, message, timestamp, tags) followed by custom
// attributes sorted by name, nested objects flattened into dotted keys.
// Attribute numbers are always floats since Datadog does not tell integers apart.
// Logs below logSeverity are dropped.
func LogRecords(logs []datadogV2.Log, logSeverity string) []record.Record {
	records := make([]record.Record, 0, len(logs))
	for _, l := range logs {
		if l.Attributes == nil {
			continue
		}
		if l.Attributes.Status != nil && ShouldSkipLog(*l.Attributes.Status, logSeverity) {
			log.Debug().Str("id", optString(l.Id).String()).Msg("Skipping log due to severity filter")
			continue
		}
		records = append(records, logRecord(l))
	}
	return records
}

// reservedFields are the log fields LogRecords sets itself. Attributes of the
// same name are dropped.
var reservedFields = map[string]bool{
	"id": true, "status": true, "host": true, "service": true,
	"message": true, "timestamp": true, "tags": true,
}

// logRecord leaves out reserved fields the log does not carry, so a window in
// which no log has, say, a host does not yield an all-null field.
func logRecord(l datadogV2.Log) record.Record {
	b := record.NewBuilder()
	attrs := l.Attributes

	setString(b, "id", l.Id)
	setString(b, "status", attrs.Status)
	setString(b, "host", attrs.Host)
	setString(b, "service", attrs.Service)
	setString(b, "message", attrs.Message)
	if attrs.Timestamp != nil {
		b.Set("timestamp", record.String(attrs.Timestamp.UTC().Format(time.RFC3339)))
	}
	if len(attrs.Tags) > 0 {
		tags := make([]record.Value, len(attrs.Tags))
		for i, tag := range attrs.Tags {
			tags[i] = record.String(tag)
		}
		b.Set("tags", record.Array(tags...))
	}

	flattenAttributes(b, "", attrs.Attributes)
	return b.Record()
}

func setString(b *record.Builder, name string, s *string) {
	if s != nil {
		b.Set(name, record.String(*s))
	}
}

func flattenAttributes(b *record.Builder, prefix string, m map[string]interface{}) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if reservedFields[fullKey] || b.Has(fullKey) {
			continue
		}

		if nested, ok := m[key].(map[string]interface{}); ok {
			flattenAttributes(b, fullKey, nested)
			continue
		}
		if v, ok := attributeValue(m[key]); ok {
			b.Set(fullKey, v)
		} else {
			log.Debug().Str("attribute", fullKey).Msg("Skipping attribute that holds nested values")
		}
	}
}

func attributeValue(val interface{}) (record.Value, bool) {
	switch v := val.(type) {
	case nil:
		return record.Null(), true
	case string:
		return record.String(v), true
	case bool:
		return record.Bool(v), true
	case float64:
		return record.Float(v), true
	case int64:
		return record.Float(float64(v)), true
	case int:
		return record.Float(float64(v)), true
	case []interface{}:
		elems := make([]record.Value, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case []interface{}, map[string]interface{}:
				return record.Value{}, false
			}
			el, ok := attributeValue(item)
			if !ok {
				return record.Value{}, false
			}
			elems = append(elems, el)
		}
		return record.Array(elems...), true
	default:
		return record.String(fmt.Sprintf("%v", v)), true
	}
}

func optString(s *string) record.Value {
	if s == nil {
		return record.Null()
	}
	return record.String(*s)
}
