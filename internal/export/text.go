package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-cosmos/internal/horoscope"
	"github.com/litescript/ls-cosmos/internal/lunar"
	"github.com/litescript/ls-cosmos/internal/natal"
	"github.com/litescript/ls-cosmos/internal/tarot"
)

const ruleWidth = 72

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

// WriteTarot writes a spread as plain text.
func WriteTarot(w io.Writer, r TarotResult) {
	heading(w, fmt.Sprintf("Tiragem de Tarot (seed %d)", r.Seed))
	for _, c := range r.Cards {
		orient := "normal"
		if c.Reversed {
			orient = "invertida"
		}
		fmt.Fprintf(w, "%-9s %-5s %-22s %s\n", c.Position, c.Card.Numeral, c.Card.Name, orient)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Reading.Narrative)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Passado:  %s\n", r.Reading.PastInsight)
	fmt.Fprintf(w, "Presente: %s\n", r.Reading.PresentInsight)
	fmt.Fprintf(w, "Futuro:   %s\n", r.Reading.FutureInsight)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Energia: %s\n", tarot.EnergyLabel(r.Reading.Energy))
	fmt.Fprintf(w, "Conselho: %s\n", r.Reading.Advice)
}

// WriteNatal writes a chart as plain text.
func WriteNatal(w io.Writer, c natal.Chart) {
	heading(w, "Mapa Natal")
	fmt.Fprintf(w, "Sol:         %s %s\n", c.Sun.Symbol, c.Sun.Name)
	fmt.Fprintf(w, "Lua:         %s %s\n", c.Moon.Symbol, c.Moon.Name)
	fmt.Fprintf(w, "Ascendente:  %s %s\n", c.Ascendant.Symbol, c.Ascendant.Name)
	fmt.Fprintln(w)
	for _, p := range c.Planets {
		fmt.Fprintf(w, "%-10s %s\n", p.Name, p.Sign.Name)
	}
	fmt.Fprintln(w)
	for _, h := range c.Houses {
		fmt.Fprintf(w, "%2d  %-22s %-12s %s\n", h.Number, h.Name, h.Sign.Name, h.Keyword)
	}
}

// WriteMoon writes the month calendar with one phase symbol per day.
func WriteMoon(w io.Writer, r MoonResult) {
	heading(w, fmt.Sprintf("Lua · %s de %d", r.MonthName, r.Year))
	t := r.Today
	fmt.Fprintf(w, "Hoje (%s): %s %s, %d%% iluminada, lua nova em %.1f dias\n",
		t.Date, t.Phase.Symbol, t.Phase.Name, t.Illumination, t.DaysUntilNew)
	fmt.Fprintf(w, "Ritual: %s\n\n", t.Ritual.Name)

	for i, d := range r.Days {
		fmt.Fprintf(w, "%2d %s  ", d.Day, lunar.Phase(d.Phase).Symbol)
		if (i+1)%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if len(r.Days)%7 != 0 {
		fmt.Fprintln(w)
	}
}

// WriteCompat writes a pair's scores and analysis.
func WriteCompat(w io.Writer, r CompatResult) {
	heading(w, fmt.Sprintf("Compatibilidade %s × %s", r.SignA, r.SignB))
	rows := []struct {
		label string
		key   string
		score int
	}{
		{"Amor", "love", r.Love},
		{"Amizade", "friendship", r.Friendship},
		{"Trabalho", "work", r.Work},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-9s %3d%%  %s\n", row.label, row.score, r.Analysis[row.key])
	}
}

// WriteHoroscope writes a daily reading.
func WriteHoroscope(w io.Writer, r horoscope.Reading) {
	heading(w, fmt.Sprintf("%s %s · %s · %s", r.Sign.Symbol, r.Sign.Name, r.Element, r.Date))
	fmt.Fprintln(w, r.Text.Title)
	fmt.Fprintln(w, r.Text.Overview)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Amor:     %s\n", r.Text.Love)
	fmt.Fprintf(w, "Carreira: %s\n", r.Text.Career)
	fmt.Fprintf(w, "Saude:    %s\n", r.Text.Health)
	fmt.Fprintln(w)
	a := r.Aspects
	fmt.Fprintf(w, "amor %d · carreira %d · saude %d · sorte %d · espirito %d · energia %d\n",
		a.Love, a.Career, a.Health, a.Luck, a.Spirit, a.Energy)
	fmt.Fprintf(w, "Numero da sorte: %d   Cor: %s %s\n", r.LuckyNumber, r.LuckyColor.Emoji, r.LuckyColor.Name)
	fmt.Fprintf(w, "Conselho: %s\n", r.Text.Advice)
}

// WriteDream writes matching symbols.
func WriteDream(w io.Writer, r DreamResult) {
	heading(w, fmt.Sprintf("Sonhos: %q em %s", r.Query, r.Category))
	if len(r.Symbols) == 0 {
		fmt.Fprintln(w, "Nenhum simbolo encontrado")
		return
	}
	for _, s := range r.Symbols {
		fmt.Fprintf(w, "%s (%s)\n  %s\n  %s\n", s.Symbol, s.Category, s.Meaning, strings.Join(s.Emotions, ", "))
	}
	fmt.Fprintf(w, "\nTotal: %d simbolos\n", len(r.Symbols))
}
