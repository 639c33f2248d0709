package message

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	plainSenderPattern = regexp.MustCompile(`^([\p{L}][\p{L}\p{M}'’ ._-]{0,39}):\s*(.*)$`)

	chatBracketPattern = regexp.MustCompile(`^\[(\d{1,2}[/.]\d{1,2}[/.]\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?(?:\s?[APap]\.?[Mm]\.?)?)\]\s*([^:]+?):\s?(.*)$`)
	chatDashPattern    = regexp.MustCompile(`^(\d{1,2}[/.]\d{1,2}[/.]\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?(?:\s?[APap]\.?[Mm]\.?)?)\s+-\s+([^:]+?):\s?(.*)$`)
	chatSystemPattern  = regexp.MustCompile(`^\[?\d{1,2}[/.]\d{1,2}[/.]\d{2,4},?\s+\d{1,2}:\d{2}`)

	headerDayFirstPattern = regexp.MustCompile(`^(\d{1,2}[/.]\d{1,2}[/.]\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?(?:\s?[APap]\.?[Mm]\.?)?)$`)
)

var headerLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// attributedLine is the text carried by one raw line plus the sender and
// time in force for it.
type attributedLine struct {
	sender string
	at     *time.Time
	text   string
	// err is set when the line's message header could not be read.
	err error
}

// lineDecoder is the format-specific half of the parser. Decoders are
// stateful: context such as the active sender carries across lines.
type lineDecoder interface {
	decode(raw string) (attributedLine, bool)
}

func newDecoder(kind Kind, body string, loc *time.Location) (lineDecoder, error) {
	switch kind {
	case KindPlain:
		return &plainDecoder{loc: loc}, nil
	case KindChatExport:
		return &chatDecoder{loc: loc, order: chatDateOrder(body)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

type plainDecoder struct {
	loc    *time.Location
	sender string
	at     *time.Time
}

// decode handles three line shapes: timestamp-only lines set the block time
// until the next timestamp line, "Name: text" switches the sender, blank
// lines end the current sender's block.
func (d *plainDecoder) decode(raw string) (attributedLine, bool) {
	line := strings.TrimSpace(stripMarks(raw))
	if line == "" {
		d.sender = ""
		return attributedLine{}, false
	}

	if ts, ok := parseHeaderTimestamp(line, d.loc); ok {
		d.at = &ts
		return attributedLine{}, false
	}

	if m := plainSenderPattern.FindStringSubmatch(line); m != nil {
		d.sender = strings.TrimSpace(m[1])
		line = strings.TrimSpace(m[2])
		if line == "" {
			return attributedLine{}, false
		}
	}

	return attributedLine{sender: d.sender, at: d.at, text: line}, true
}

type chatDecoder struct {
	loc    *time.Location
	order  dateOrder
	sender string
	at     *time.Time
	err    error
	active bool
}

// decode reads prefixed message lines; unprefixed lines continue the previous
// message. System lines (prefix without a sender) end the continuation.
// A message whose header date cannot be read keeps its text and sender but
// carries the error, as do its continuation lines.
func (d *chatDecoder) decode(raw string) (attributedLine, bool) {
	line := strings.TrimSpace(stripMarks(raw))

	m := chatBracketPattern.FindStringSubmatch(line)
	if m == nil {
		m = chatDashPattern.FindStringSubmatch(line)
	}
	if m != nil {
		d.sender = strings.TrimSpace(m[3])
		d.active = true
		d.at, d.err = nil, nil
		if ts, err := parseNumericDate(m[1], m[2], d.order, d.loc); err != nil {
			d.err = fmt.Errorf("%w: %v", ErrUnparsableTimestamp, err)
		} else {
			d.at = &ts
		}
		text := strings.TrimSpace(m[4])
		if text == "" {
			return attributedLine{}, false
		}
		return attributedLine{sender: d.sender, at: d.at, text: text, err: d.err}, true
	}

	if chatSystemPattern.MatchString(line) {
		d.active = false
		return attributedLine{}, false
	}
	if !d.active || line == "" {
		return attributedLine{}, false
	}

	return attributedLine{sender: d.sender, at: d.at, text: line, err: d.err}, true
}

type dateOrder int

const (
	dayFirst dateOrder = iota
	monthFirst
)

// chatDateOrder looks at every message header in body. A document is read
// month-first only when some header cannot be day-first and none can be
// month-first; otherwise day-first applies and impossible dates fail.
func chatDateOrder(body string) dateOrder {
	var sawDayFirst, sawMonthFirst bool
	for raw := range strings.Lines(body) {
		line := strings.TrimSpace(stripMarks(raw))
		m := chatBracketPattern.FindStringSubmatch(line)
		if m == nil {
			m = chatDashPattern.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}
		first, second, ok := leadingDateFields(m[1])
		if !ok {
			continue
		}
		switch {
		case first > 12 && second <= 12:
			sawDayFirst = true
		case second > 12 && first <= 12:
			sawMonthFirst = true
		}
	}
	if sawMonthFirst && !sawDayFirst {
		return monthFirst
	}
	return dayFirst
}

func leadingDateFields(date string) (int, int, bool) {
	parts := strings.FieldsFunc(date, func(r rune) bool { return r == '/' || r == '.' })
	if len(parts) != 3 {
		return 0, 0, false
	}
	first, errFirst := strconv.Atoi(parts[0])
	second, errSecond := strconv.Atoi(parts[1])
	if errFirst != nil || errSecond != nil {
		return 0, 0, false
	}
	return first, second, true
}

func stripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u200f', '\ufeff', '\u202a', '\u202c':
			return -1
		default:
			return r
		}
	}, s)
}

func parseHeaderTimestamp(line string, loc *time.Location) (time.Time, bool) {
	candidate := strings.TrimSpace(strings.TrimLeft(line, "#"))
	candidate = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(candidate, "["), "]"))
	if candidate == "" {
		return time.Time{}, false
	}

	for _, layout := range headerLayouts {
		if ts, err := time.ParseInLocation(layout, candidate, loc); err == nil {
			return ts, true
		}
	}
	if m := headerDayFirstPattern.FindStringSubmatch(candidate); m != nil {
		if ts, err := parseNumericDate(m[1], m[2], dayFirst, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseNumericDate parses dd/mm/yy(yy) or mm/dd/yy(yy) dates with
// hh:mm(:ss) clocks and optional am/pm.
func parseNumericDate(date, clock string, order dateOrder, loc *time.Location) (time.Time, error) {
	parts := strings.FieldsFunc(date, func(r rune) bool { return r == '/' || r == '.' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	day, errDay := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	year, errYear := strconv.Atoi(parts[2])
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	if order == monthFirst {
		day, month = month, day
	}
	if year < 100 {
		year += 2000
	}

	clock = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(clock), ".", ""))
	pm := strings.HasSuffix(clock, "pm")
	am := strings.HasSuffix(clock, "am")
	clock = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(clock, "pm"), "am"))

	fields := strings.Split(clock, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return time.Time{}, fmt.Errorf("invalid clock %q", clock)
	}
	values := make([]int, 3)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid clock %q", clock)
		}
		values[i] = v
	}
	hour, minute, second := values[0], values[1], values[2]
	if am || pm {
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("invalid 12-hour clock %q", clock)
		}
		if pm && hour < 12 {
			hour += 12
		}
		if am && hour == 12 {
			hour = 0
		}
	}

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("timestamp out of range: %s %s", date, clock)
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	if ts.Day() != day {
		return time.Time{}, fmt.Errorf("invalid day in %q", date)
	}
	return ts, nil
}
