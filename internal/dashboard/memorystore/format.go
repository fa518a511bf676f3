package memorystore

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatThousands renders v rounded to an integer with comma separators, e.g. 38,123.
func formatThousands(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%d", int64(math.Round(v)))
}
