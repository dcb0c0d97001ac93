package cards

import "strings"

type FilterOptions struct {
	Categories []string `json:"categories"`
	Schools    []string `json:"schools"`
	Ranks      []string `json:"ranks"`
	Tags       []string `json:"tags"`
	FreeWords  string   `json:"free_words"`
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

// Filter returns the entities matching every non-empty option.
func Filter(entities []Entity, opt FilterOptions) []Entity {
	out := []Entity{}
	for _, e := range entities {
		if len(opt.Categories) > 0 && !containsAny([]string{e.Category}, opt.Categories) {
			continue
		}
		if len(opt.Schools) > 0 && !containsAny([]string{e.School}, opt.Schools) {
			continue
		}
		if len(opt.Ranks) > 0 && !containsAny([]string{e.Rank}, opt.Ranks) {
			continue
		}
		if len(opt.Tags) > 0 && !containsAny(e.Tags, opt.Tags) {
			continue
		}
		if opt.FreeWords != "" {
			text := strings.ToLower(e.Name + " " + e.Description + " " + strings.Join(e.Tags, " "))
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				if !strings.Contains(text, strings.ToLower(k)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
