package game

import (
	"bytes"
	"fmt"
	"strings"
)

func splitSubN(s string, n int) []string {
	sub := ""
	subs := []string{}

	runes := bytes.Runes([]byte(s))
	l := len(runes)
	for i, r := range runes {
		sub = sub + string(r)
		if (i+1)%n == 0 {
			subs = append(subs, sub)
			sub = ""
		} else if (i + 1) == l {
			subs = append(subs, sub)
		}
	}

	return subs
}

func addText(lines []string, row int, hpad int, text string) {
	maxTextSize := 42
	sp := splitSubN(text, maxTextSize)

	for _, chunk := range sp {
		if row >= len(lines) {
			return
		}
		lines[row] = lines[row] + strings.Repeat(" ", hpad) + chunk
		row++
	}
}

func (r *Round) stateString(names [2]string, pi int) string {
	marker := ""
	if !r.Over() && r.placer == pi {
		marker = "-> "
	}
	role := "selects"
	if r.placer == pi {
		role = "places"
	}
	return fmt.Sprintf("%4v%-12v%s", marker, names[pi], role)
}

// ToDisplayText renders the compact board with the players, the piece in
// hand and the pool size alongside it.
func (r *Round) ToDisplayText(names [2]string) string {
	bts := strings.Split(strings.TrimRight(r.board.ToCompactText(), "\n"), "\n")
	hpadding := 3
	vpadding := 1

	for pi := 0; pi < 2; pi++ {
		addText(bts, vpadding+pi, hpadding, r.stateString(names, pi))
	}
	if p, ok := r.InHand(); ok {
		addText(bts, vpadding+3, hpadding, fmt.Sprintf("In hand: %v", p))
	}
	addText(bts, vpadding+4, hpadding, fmt.Sprintf("Unplaced pieces: %d", r.pieces.Len()))
	addText(bts, vpadding+5, hpadding, fmt.Sprintf("Placements: %d", len(r.history)))
	if res, ok := r.Result(); ok {
		if res.Drawn {
			addText(bts, vpadding+6, hpadding, "Round is drawn.")
		} else {
			addText(bts, vpadding+6, hpadding, fmt.Sprintf("%s wins on %v.", names[res.Winner], res.Line))
		}
	}
	return strings.Join(bts, "\n") + "\n"
}
