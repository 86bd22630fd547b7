package view

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatSalary renders an amount as rupiah with thousands separators,
// e.g. "Rp 1,234,567".
func FormatSalary(amount int64) string {
	return printer.Sprintf("Rp %d", amount)
}

// StatusLabel is the display text for the active flag.
func StatusLabel(active int) string {
	if active != 0 {
		return "Aktif"
	}
	return "Tidak Aktif"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
