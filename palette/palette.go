// Package palette assigns display colors to speakers.
package palette

const Unknown = "unknown"

var colors = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Color returns the palette entry for index i, wrapping in both directions.
func Color(i int) string {
	n := len(colors)
	return colors[((i%n)+n)%n]
}

// Assign gives each distinct speaker a color in order of first appearance.
// An empty label is reported as Unknown.
func Assign(speakers []string) map[string]string {
	out := map[string]string{}
	next := 0
	for _, s := range speakers {
		if s == "" {
			s = Unknown
		}
		if _, ok := out[s]; ok {
			continue
		}
		out[s] = Color(next)
		next++
	}
	return out
}
