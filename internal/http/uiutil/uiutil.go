// Package uiutil formats money, dates and statuses for the Indonesian UI.
package uiutil

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/revobooking/revo-ui/internal/domain/model"
)

// LongDateLayout documents the output of Formatter.LongDate.
const LongDateLayout = "Senin, 2 Januari 2006 15.04"

var dayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Formatter renders values in a fixed display zone and locale.
type Formatter struct {
	loc     *time.Location
	printer *message.Printer
}

// NewFormatter returns a Formatter for loc and tag. A nil loc means UTC.
func NewFormatter(loc *time.Location, tag language.Tag) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc, printer: message.NewPrinter(tag)}
}

// Location returns the display zone.
func (f *Formatter) Location() *time.Location { return f.loc }

// Rupiah formats an amount as "Rp 1.500.000", rounded to whole rupiah.
func (f *Formatter) Rupiah(m model.Money) string {
	return "Rp " + f.printer.Sprintf("%d", m.Round(0).IntPart())
}

// Number groups an integer with the locale's thousands separator.
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

// LongDate formats t as "Senin, 2 Januari 2006 15.04" in the display zone.
func (f *Formatter) LongDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	lt := t.In(f.loc)
	var b strings.Builder
	b.WriteString(dayNames[lt.Weekday()])
	b.WriteString(", ")
	b.WriteString(f.shortDate(lt))
	b.WriteByte(' ')
	b.WriteString(lt.Format("15.04"))
	return b.String()
}

// ShortDate formats t as "2 Januari 2006" in the display zone.
func (f *Formatter) ShortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return f.shortDate(t.In(f.loc))
}

func (f *Formatter) shortDate(lt time.Time) string {
	// Years are not digit-grouped.
	return strconv.Itoa(lt.Day()) + " " + monthNames[lt.Month()-1] + " " + strconv.Itoa(lt.Year())
}

// DateTimeLocal renders t as a datetime-local input value.
func (f *Formatter) DateTimeLocal(t time.Time) string {
	return model.ToLocalEditable(t, f.loc)
}

// StatusLabel returns the Indonesian label of a booking status.
func StatusLabel(s model.BookingStatus) string {
	switch s.Normalized() {
	case model.BookingConfirmed:
		return "Terkonfirmasi"
	case model.BookingPending:
		return "Menunggu"
	case model.BookingCompleted:
		return "Selesai"
	case model.BookingCancelled:
		return "Dibatalkan"
	default:
		return string(s)
	}
}

// StatusClass returns the badge CSS class of a booking status.
func StatusClass(s model.BookingStatus) string {
	switch s.Normalized() {
	case model.BookingConfirmed:
		return "badge-success"
	case model.BookingPending:
		return "badge-warning"
	case model.BookingCompleted:
		return "badge-info"
	case model.BookingCancelled:
		return "badge-danger"
	default:
		return "badge-light"
	}
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
