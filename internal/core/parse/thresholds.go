package parse

import "github.com/garvonious-ui/cuervo-intel-sub000/internal/common"

// Thresholds are the length and distance heuristics the section parsers
// use to tell titles from prose and labels from values.
type Thresholds struct {
	TitleMaxLen    int // paragraphs up to this many runes are titles
	MinItemLen     int // list items must be longer than this
	MinBlockLen    int // analysis blocks must be longer than this
	PairGap        int // max runes between two headings on the same row
	StatLookahead  int // lines searched after a statistic label
	FootnoteMaxLen int // footnote lines are shorter than this
	CategoryMaxLen int // sponsorship category names are shorter than this
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMaxLen:    80,
		MinItemLen:     5,
		MinBlockLen:    10,
		PairGap:        40,
		StatLookahead:  3,
		FootnoteMaxLen: 60,
		CategoryMaxLen: 60,
	}
}

// ThresholdsFrom reads thresholds from configuration; unset (zero or
// negative) values keep their defaults.
func ThresholdsFrom(cfg common.ParseConfig) Thresholds {
	th := DefaultThresholds()
	set := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	set(&th.TitleMaxLen, cfg.TitleMaxLen)
	set(&th.MinItemLen, cfg.MinItemLen)
	set(&th.MinBlockLen, cfg.MinBlockLen)
	set(&th.PairGap, cfg.PairGap)
	set(&th.StatLookahead, cfg.StatLookahead)
	set(&th.FootnoteMaxLen, cfg.FootnoteMaxLen)
	set(&th.CategoryMaxLen, cfg.CategoryMaxLen)
	return th
}
