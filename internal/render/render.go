// Package render writes catalog pages to a terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
)

const (
	defaultWidth = 80
	tileWidth    = 26
	tileGap      = 2
)

var (
	labelColor  = color.New(color.FgCyan)
	valueColor  = color.New(color.FgHiWhite)
	dimColor    = color.New(color.FgHiBlack)
	headerColor = color.New(color.FgHiWhite, color.Bold)

	categoryColors = map[card.Category]*color.Color{
		card.Monster: color.New(color.FgYellow),
		card.Spell:   color.New(color.FgGreen),
		card.Trap:    color.New(color.FgMagenta),
	}

	statusColors = map[card.BanStatus]*color.Color{
		card.Forbidden:   color.New(color.FgRed, color.Bold),
		card.Limited:     color.New(color.FgYellow),
		card.SemiLimited: color.New(color.FgBlue),
	}
)

// Renderer writes pages to Out, laying them out for Width columns
type Renderer struct {
	Out   io.Writer
	Width int
}

// New returns a renderer for out; a non-positive width is detected from
// the terminal and falls back to 80 columns.
func New(out io.Writer, width int) *Renderer {
	if width <= 0 {
		width = TerminalWidth()
	}
	return &Renderer{Out: out, Width: width}
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// List renders one card per line
func (r *Renderer) List(w Window[card.Card]) {
	r.resultHeader(w)
	for i := range w.Items {
		c := &w.Items[i]
		fmt.Fprintf(r.Out, "%s  %s  %s  %s\n",
			dimColor.Sprintf("%-10s", c.ID),
			valueColor.Sprint(pad(truncate(c.Name, 32), 32)),
			categoryColor(c.Category).Sprint(pad(Subtitle(c), 24)),
			Stats(c))
	}
	r.pager(w)
}

// Grid renders cards as tiles, as many per row as fit the width
func (r *Renderer) Grid(w Window[card.Card]) {
	r.resultHeader(w)

	perRow := (r.Width + tileGap) / (tileWidth + tileGap)
	if perRow < 1 {
		perRow = 1
	}

	for start := 0; start < len(w.Items); start += perRow {
		end := start + perRow
		if end > len(w.Items) {
			end = len(w.Items)
		}
		tiles := make([][]string, 0, end-start)
		for i := start; i < end; i++ {
			tiles = append(tiles, tile(&w.Items[i]))
		}

		for line := 0; line < len(tiles[0]); line++ {
			cells := make([]string, len(tiles))
			for i, t := range tiles {
				cells[i] = t[line]
			}
			fmt.Fprintln(r.Out, strings.TrimRight(strings.Join(cells, strings.Repeat(" ", tileGap)), " "))
		}
		fmt.Fprintln(r.Out)
	}
	r.pager(w)
}

// tile returns the fixed-size lines of one grid cell
func tile(c *card.Card) []string {
	inner := tileWidth - 4
	border := dimColor.Sprint("+" + strings.Repeat("-", tileWidth-2) + "+")
	row := func(s string, col *color.Color) string {
		text := pad(truncate(s, inner), inner)
		if col != nil {
			text = col.Sprint(text)
		}
		return dimColor.Sprint("| ") + text + dimColor.Sprint(" |")
	}

	status := ""
	if st := c.BanStatus(); st != card.Unrestricted {
		status = st.String()
	}

	return []string{
		border,
		row(c.Name, valueColor),
		row(Subtitle(c), categoryColor(c.Category)),
		row(Stats(c), nil),
		row(status, statusColor(c.BanStatus())),
		row(c.ID, dimColor),
		border,
	}
}

// Card renders the detail view: art on the left, information on the right
func (r *Renderer) Card(c *card.Card, art string) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	artWidth := 0
	for _, line := range artLines {
		if w := VisibleWidth(line); w > artWidth {
			artWidth = w
		}
	}

	spacing := 4
	infoStart := artWidth + spacing
	infoWidth := r.Width - infoStart - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	info := []string{
		labelColor.Sprint("Card:      ") + valueColor.Sprint(c.Name),
		labelColor.Sprint("ID:        ") + valueColor.Sprint(c.ID),
		labelColor.Sprint("Category:  ") + categoryColor(c.Category).Sprint(Subtitle(c)),
	}
	add := func(label, value string) {
		if value != "" {
			info = append(info, labelColor.Sprint(pad(label+":", 11))+valueColor.Sprint(value))
		}
	}
	add("Set", c.Set)
	add("Archetype", c.Archetype)
	add("Attribute", c.Attribute)
	add("Type", strings.Join(c.MonsterType, " / "))
	add("Stats", Stats(c))
	if len(c.LinkArrows) > 0 {
		add("Arrows", Arrows(c.LinkArrows))
	}
	if st := c.BanStatus(); st != card.Unrestricted {
		info = append(info, labelColor.Sprint("Status:    ")+statusColor(st).Sprint(st.String()))
	}
	add("Added", c.Added())
	if c.Text != "" {
		info = append(info, "", labelColor.Sprint("Text:"))
		info = append(info, WrapText(c.Text, infoWidth)...)
	}

	fmt.Fprintln(r.Out)
	rows := max(len(artLines), len(info))
	for i := 0; i < rows; i++ {
		fmt.Fprint(r.Out, "  ")
		if i < len(artLines) {
			fmt.Fprint(r.Out, artLines[i])
			fmt.Fprint(r.Out, strings.Repeat(" ", infoStart-VisibleWidth(artLines[i])))
		} else {
			fmt.Fprint(r.Out, strings.Repeat(" ", infoStart))
		}
		if i < len(info) {
			fmt.Fprint(r.Out, info[i])
		}
		fmt.Fprintln(r.Out)
	}
	fmt.Fprintln(r.Out)
}

// BanList renders the three ban list sections with their counts
func (r *Renderer) BanList(bl *catalog.BanList) {
	for _, s := range bl.Sections() {
		headerColor.Fprintf(r.Out, "%s (%d)\n", s.Title, len(s.Cards))
		if len(s.Cards) == 0 {
			dimColor.Fprintln(r.Out, "  none")
		}
		for i := range s.Cards {
			c := &s.Cards[i]
			fmt.Fprintf(r.Out, "  %s %s\n", statusColor(s.Status).Sprint("●"), c.Name)
		}
		fmt.Fprintln(r.Out)
	}
}

// Releases renders the set list
func (r *Renderer) Releases(sets []card.SetInfo) {
	headerColor.Fprintln(r.Out, "Releases")
	if len(sets) == 0 {
		dimColor.Fprintln(r.Out, "  No releases yet.")
		return
	}
	for _, s := range sets {
		fmt.Fprintf(r.Out, "  %s  %s", labelColor.Sprint(pad(s.Code, 10)), valueColor.Sprint(s.Name))
		if s.ReleaseDate != "" {
			fmt.Fprintf(r.Out, "  %s", dimColor.Sprint(s.ReleaseDate))
		}
		fmt.Fprintln(r.Out)
		if s.Description != "" {
			for _, line := range WrapText(s.Description, r.Width-14) {
				fmt.Fprintf(r.Out, "              %s\n", line)
			}
		}
	}
}

// Home renders the welcome line and the news feed
func (r *Renderer) Home(totalCards int, news []card.NewsItem) {
	headerColor.Fprintln(r.Out, "Welcome to the card catalog")
	fmt.Fprintf(r.Out, "%d cards available.\n\n", totalCards)

	headerColor.Fprintln(r.Out, "News")
	if len(news) == 0 {
		dimColor.Fprintln(r.Out, "  No news.")
		return
	}
	for _, n := range news {
		fmt.Fprintf(r.Out, "  %s  %s\n", dimColor.Sprint(pad(n.Date, 10)), valueColor.Sprint(n.Title))
		if n.Link != "" {
			fmt.Fprintf(r.Out, "              %s\n", labelColor.Sprint(n.Link))
		}
	}
}

func (r *Renderer) resultHeader(w Window[card.Card]) {
	if w.Total == 0 {
		dimColor.Fprintln(r.Out, "No cards match the current filters.")
		return
	}
	first := w.Offset + 1
	last := w.Offset + len(w.Items)
	headerColor.Fprintf(r.Out, "%d cards", w.Total)
	dimColor.Fprintf(r.Out, "  (showing %d-%d)\n\n", first, last)
}

func (r *Renderer) pager(w Window[card.Card]) {
	if w.Pages <= 1 {
		return
	}
	line := fmt.Sprintf("page %d of %d", w.Page, w.Pages)
	if w.HasNext() {
		line += fmt.Sprintf(", next: --page %d", w.Page+1)
	}
	dimColor.Fprintln(r.Out, line)
}

// Subtitle is the category line of a card, e.g. "Spell · Quick-Play" or
// "Monster · Effect/Xyz"
func Subtitle(c *card.Card) string {
	parts := []string{string(c.Category)}
	switch {
	case c.Icon != "":
		parts = append(parts, c.Icon)
	case len(c.CardTypes) > 0:
		parts = append(parts, strings.Join(c.CardTypes, "/"))
	}
	return strings.Join(parts, " · ")
}

// Stats summarizes the numeric stats that are present
func Stats(c *card.Card) string {
	var parts []string
	if c.Level != nil {
		parts = append(parts, "LV "+strconv.Itoa(*c.Level))
	}
	if c.Rank != nil {
		parts = append(parts, "RK "+strconv.Itoa(*c.Rank))
	}
	if c.LinkRating != nil {
		parts = append(parts, "LINK-"+strconv.Itoa(*c.LinkRating))
	}
	if c.Scale != nil {
		parts = append(parts, "SC "+strconv.Itoa(*c.Scale))
	}
	if c.ATK != nil || c.DEF != nil {
		parts = append(parts, "ATK "+statValue(c.ATK))
		if !c.IsLink() {
			parts = append(parts, "DEF "+statValue(c.DEF))
		}
	}
	return strings.Join(parts, "  ")
}

// Arrows lists link arrow codes in index order
func Arrows(indices []int) string {
	codes := make([]string, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(card.ArrowCodes) {
			codes = append(codes, card.ArrowCodes[i])
		}
	}
	return strings.Join(codes, " ")
}

func statValue(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}

func categoryColor(c card.Category) *color.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return valueColor
}

func statusColor(s card.BanStatus) *color.Color {
	if col, ok := statusColors[s]; ok {
		return col
	}
	return dimColor
}

// WrapText wraps text to a specified width
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var line string
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			result = append(result, line)
			line = word
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// VisibleWidth counts the runes of s that reach the screen
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(StripAnsi(s))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func pad(s string, n int) string {
	if w := utf8.RuneCountInString(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
