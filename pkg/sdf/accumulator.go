package sdf

import "strings"

// RecordStart opens every record the accumulator collects
const RecordStart = "(INTERCONNECT"

// Accumulator reassembles parenthesised records that may span any number of
// physical lines. It is fed one line at a time and carries its state across
// calls:
//
//	inactive                  -> looking for RecordStart
//	active(balance, buffer)   -> inside a record, balance parens still open
//
// A record completes when balance returns to zero. The zero value is an
// inactive accumulator ready for use.
type Accumulator struct {
	active  bool
	balance int
	buffer  strings.Builder
}

// Active reports whether a record is being accumulated
func (a *Accumulator) Active() bool {
	return a.active
}

// Balance returns the parenthesis depth of the record being accumulated
func (a *Accumulator) Balance() int {
	return a.balance
}

// Pending returns the text collected so far for the unfinished record
func (a *Accumulator) Pending() string {
	return a.buffer.String()
}

// Reset drops any partial record
func (a *Accumulator) Reset() {
	a.active = false
	a.balance = 0
	a.buffer.Reset()
}

// Feed consumes one line and appends every record it completes to out.
// A line may finish one record and start, or fully contain, others.
func (a *Accumulator) Feed(line string, out []string) []string {
	pos := 0
	for pos < len(line) {
		if !a.active {
			start := strings.Index(line[pos:], RecordStart)
			if start < 0 {
				return out
			}
			pos += start
			a.active = true
			a.balance = 0
		}

		end, done := a.scan(line, pos)
		a.buffer.WriteString(line[pos:end])
		pos = end
		if done {
			out = append(out, a.buffer.String())
			a.Reset()
		}
	}
	return out
}

// scan walks the parentheses of line from pos, updating balance. It returns
// the offset just past the closing paren when the record completes, or
// len(line) when the line ends first.
func (a *Accumulator) scan(line string, pos int) (int, bool) {
	for pos < len(line) {
		i := strings.IndexAny(line[pos:], "()")
		if i < 0 {
			return len(line), false
		}
		pos += i
		if line[pos] == '(' {
			a.balance++
		} else {
			a.balance--
		}
		pos++
		if a.balance == 0 {
			return pos, true
		}
	}
	return len(line), false
}
