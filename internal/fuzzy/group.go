package fuzzy

import "sort"

// ValueGroup is a cluster of similar string values.
type ValueGroup struct {
	Template string   `json:"template"`
	Count    int      `json:"count"`
	Samples  []string `json:"samples"`
}

const DefaultSimilarityThreshold = 0.85
const maxSamplesPerGroup = 3

func Group(values []string) []ValueGroup {
	return GroupWithThreshold(values, DefaultSimilarityThreshold)
}

// GroupWithThreshold clusters values by their normalized form, then merges
// clusters whose templates are at least threshold similar. Groups are ordered
// by descending count, ties by template.
func GroupWithThreshold(values []string, threshold float64) []ValueGroup {
	byTemplate := make(map[string]*ValueGroup)
	var groups []*ValueGroup

	for _, v := range values {
		norm := Normalize(v)
		g, ok := byTemplate[norm]
		if !ok {
			g = &ValueGroup{Template: norm}
			byTemplate[norm] = g
			groups = append(groups, g)
		}
		g.Count++
		g.addSample(v)
	}

	merged := mergeByLevenshtein(groups, threshold)

	result := make([]ValueGroup, 0, len(merged))
	for _, g := range merged {
		if g.Count > 0 {
			result = append(result, *g)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Template < result[j].Template
	})

	return result
}

func (g *ValueGroup) addSample(s string) {
	if len(g.Samples) >= maxSamplesPerGroup {
		return
	}
	for _, existing := range g.Samples {
		if existing == s {
			return
		}
	}
	g.Samples = append(g.Samples, s)
}

func mergeByLevenshtein(groups []*ValueGroup, threshold float64) []*ValueGroup {
	if len(groups) <= 1 {
		return groups
	}

	for i := 0; i < len(groups); i++ {
		if groups[i].Count == 0 {
			continue
		}
		for j := i + 1; j < len(groups); j++ {
			if groups[j].Count == 0 {
				continue
			}
			if similarity(groups[i].Template, groups[j].Template) >= threshold {
				groups[i].Count += groups[j].Count
				for _, s := range groups[j].Samples {
					groups[i].addSample(s)
				}
				groups[j].Count = 0
				groups[j].Samples = nil
			}
		}
	}

	return groups
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}
