package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vietdv277/cirrus/internal/engine"
	"github.com/vietdv277/cirrus/internal/filter"
)

const boxWidth = 56

// PrintSection prints a section header for the start of an operation.
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
	fmt.Println(MutedStyle.Render(strings.Repeat(Horizontal, boxWidth)))
}

// PrintSkipReasons prints the exclusion breakdown from classification,
// most frequent reason first.
func PrintSkipReasons(reasons map[filter.Reason]int) {
	if len(reasons) == 0 {
		return
	}

	type rc struct {
		reason filter.Reason
		count  int
	}
	sorted := make([]rc, 0, len(reasons))
	for r, c := range reasons {
		sorted = append(sorted, rc{r, c})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].reason < sorted[j].reason
	})

	fmt.Println("\nSkip reasons:")
	for _, s := range sorted {
		fmt.Printf("  - %s: %d\n", s.reason, s.count)
	}
}

// PrintSummary renders the final batch report in a box.
func PrintSummary(title string, rows [][2]string, failures []engine.Failure) {
	line := func(l, r string) {
		fmt.Println(BorderStyle.Render(l + strings.Repeat(Horizontal, boxWidth-2) + r))
	}

	line(TopLeft, TopRight)
	printBoxRow(HeaderStyle.Render(padRight(title, boxWidth-4)))
	line(LeftT, RightT)
	for _, row := range rows {
		label := padRight(row[0], 28)
		value := padRight(row[1], boxWidth-4-28)
		printBoxRow(label + value)
	}
	line(BottomLeft, BottomRight)

	if len(failures) > 0 {
		fmt.Println()
		fmt.Println(ErrorStyle.Render(fmt.Sprintf("%d objects failed:", len(failures))))
		for _, f := range failures {
			fmt.Printf("  %s %s\n", ErrorStyle.Render("✗"), DisplayKey(f.Key))
			fmt.Printf("      %v\n", f.Err)
		}
	}
}

func printBoxRow(content string) {
	fmt.Println(BorderStyle.Render(Vertical) + " " + content + " " + BorderStyle.Render(Vertical))
}

// PrintHint prints a muted follow-up suggestion, like the revert command
// for a fresh backup file.
func PrintHint(lines ...string) {
	for _, l := range lines {
		fmt.Println(HintStyle.Render(l))
	}
}
