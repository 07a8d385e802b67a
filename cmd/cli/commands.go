package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/and161185/goph-passgen/internal/api"
	"github.com/and161185/goph-passgen/internal/convert"
	"github.com/and161185/goph-passgen/internal/generator"
	"github.com/and161185/goph-passgen/internal/history"
	"github.com/and161185/goph-passgen/internal/model"
	"github.com/and161185/goph-passgen/internal/rpc"
	"github.com/and161185/goph-passgen/internal/strength"
)

type genFlags struct {
	length      int
	upper       bool
	lower       bool
	digits      bool
	symbols     bool
	noAmbiguous bool
	custom      string
	count       int
	asJSON      bool
}

func (g *genFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&g.length, "length", 16, "password length")
	fs.BoolVar(&g.upper, "upper", true, "include uppercase letters")
	fs.BoolVar(&g.lower, "lower", true, "include lowercase letters")
	fs.BoolVar(&g.digits, "digits", true, "include digits")
	fs.BoolVar(&g.symbols, "symbols", true, "include symbols")
	fs.BoolVar(&g.noAmbiguous, "no-ambiguous", false, "exclude l I 1 O 0")
	fs.StringVar(&g.custom, "custom", "", "custom symbol alphabet")
	fs.IntVar(&g.count, "count", 1, "how many passwords")
	fs.BoolVar(&g.asJSON, "json", false, "print JSON")
}

func (g *genFlags) request() api.GenerateRequest {
	return api.GenerateRequest{
		Length:         g.length,
		Uppercase:      g.upper,
		Lowercase:      g.lower,
		Numbers:        g.digits,
		Symbols:        g.symbols,
		ExcludeSimilar: g.noAmbiguous,
		CustomSymbols:  g.custom,
	}
}

type phraseFlags struct {
	words      int
	sep        string
	capitalize bool
}

func (p *phraseFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&p.words, "words", generator.DefaultWordCount, "number of words")
	fs.StringVar(&p.sep, "sep", generator.DefaultSeparator, "single-character separator")
	fs.BoolVar(&p.capitalize, "capitalize", false, "capitalize each word")
}

// cmdGen generates passwords locally.
func cmdGen(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	var g genFlags
	g.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if g.count < 1 {
		return errors.New("-count must be >= 1")
	}
	cfg, err := convert.FromGenerateRequest(g.request())
	if err != nil {
		return err
	}
	return generateLocal(cfg, g.count, g.asJSON, out)
}

// cmdPhrase generates a passphrase locally.
func cmdPhrase(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("phrase", flag.ContinueOnError)
	var p phraseFlags
	p.register(fs)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := convert.FromPassphraseRequest(api.PassphraseRequest{WordCount: p.words, Separator: p.sep, Capitalize: p.capitalize})
	return generateLocal(cfg, 1, *asJSON, out)
}

func generateLocal(cfg model.GenerationConfig, count int, asJSON bool, out io.Writer) error {
	gen := generator.New()
	for i := 0; i < count; i++ {
		cred, err := gen.Generate(cfg)
		if err != nil {
			return err
		}
		if !asJSON {
			fmt.Fprintln(out, cred.Value)
			continue
		}
		g := model.Generation{Credential: cred, Strength: strength.Evaluate(cred.Value)}
		if cfg.Mode == model.ModePassphrase {
			g.PassphraseEntropyBits = generator.PassphraseEntropyBits(cred.Config.Passphrase.WordCount, gen.WordListSize())
		}
		printJSON(out, convert.ToGenerateResponse(g))
	}
	return nil
}

// cmdCheck scores a password locally.
func cmdCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pg check [-json] <password>")
	}
	r := convert.ToStrengthReport(strength.Evaluate(fs.Arg(0)))
	if *asJSON {
		printJSON(out, r)
		return nil
	}
	printReport(out, r)
	return nil
}

func printReport(out io.Writer, r api.StrengthReport) {
	fmt.Fprintf(out, "strength:   %s (%d/6)\n", r.Label, r.TotalScore)
	fmt.Fprintf(out, "entropy:    %.1f bits (unique chars: %.1f)\n", r.EntropyBits, r.UniqueEntropyBits)
	fmt.Fprintf(out, "crack time: %s\n", r.CrackTime)
	if r.Persona != "" {
		fmt.Fprintf(out, "persona:    %s\n", r.Persona)
	}
	if r.IsCommon {
		fmt.Fprintf(out, "warning:    matches common password %q\n", r.CommonPattern)
	}
	for _, f := range r.Feedback {
		fmt.Fprintf(out, "  - %s\n", f)
	}
}

// cmdSession starts a server session and saves its token.
func cmdSession(ctx context.Context, c *rpc.Client, out io.Writer) error {
	resp, err := c.NewSession(ctx, &api.SessionRequest{})
	if err != nil {
		return err
	}
	if err := saveToken(tokenFile{SessionToken: resp.Token, SessionID: resp.SessionID, ExpiresAt: resp.ExpiresAt}); err != nil {
		return err
	}
	fmt.Fprintf(out, "session %s (expires %s)\n", resp.SessionID, resp.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}

// cmdRemoteGen generates on the server; with a saved session the result lands in history.
func cmdRemoteGen(ctx context.Context, c *rpc.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("remote-gen", flag.ContinueOnError)
	var g genFlags
	g.register(fs)
	var p phraseFlags
	p.register(fs)
	mode := fs.String("mode", "random", "random or passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if g.count < 1 {
		return errors.New("-count must be >= 1")
	}
	req := g.request()
	req.Mode = *mode
	req.WordCount, req.Separator, req.Capitalize = p.words, p.sep, p.capitalize

	for i := 0; i < g.count; i++ {
		resp, err := c.Generate(ctx, &req)
		if err != nil {
			return err
		}
		if g.asJSON {
			printJSON(out, resp)
		} else {
			fmt.Fprintln(out, resp.Password)
		}
	}
	return nil
}

// cmdHistory lists, exports or clears the session history.
func cmdHistory(ctx context.Context, c *rpc.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	asCSV := fs.Bool("csv", false, "print as CSV")
	wipe := fs.Bool("clear", false, "clear history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *wipe {
		if _, err := c.ClearHistory(ctx, &api.HistoryRequest{}); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")
		return nil
	}

	resp, err := c.ListHistory(ctx, &api.HistoryRequest{})
	if err != nil {
		return err
	}
	if *asCSV {
		items := make([]model.Credential, 0, len(resp.Items))
		for _, it := range resp.Items {
			items = append(items, model.Credential{Value: it.Password})
		}
		return history.WriteCSV(out, items)
	}
	if len(resp.Items) == 0 {
		fmt.Fprintln(out, "history is empty")
		return nil
	}
	for _, it := range resp.Items {
		fmt.Fprintf(out, "%s  %-10s  %s\n", it.CreatedAt.UTC().Format(time.RFC3339), it.Mode, it.Password)
	}
	return nil
}
