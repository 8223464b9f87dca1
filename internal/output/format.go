package output

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Calories renders a calorie total with thousands separators, e.g. "1,234 kcal".
func Calories(kcal float64) string {
	return printer.Sprintf("%.0f kcal", kcal)
}

// Grams renders a weight in grams, e.g. "1,250 g".
func Grams(g float64) string {
	return printer.Sprintf("%.0f g", g)
}

// Kilograms renders a weight in kilograms with one decimal, e.g. "4.2 kg".
func Kilograms(kg float64) string {
	return printer.Sprintf("%.1f kg", kg)
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
