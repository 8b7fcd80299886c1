package main

import (
	"fmt"
	"os"

	"bearlangc"
	"bearlangc/pkg/cli"
	"bearlangc/pkg/config"
	"bearlangc/pkg/diag"
)

func main() {
	app := cli.NewApp("bearlangc")
	app.Synopsis = "[options] <input.bear>"
	app.Description = "A translator for BearLang, a Russian-keyword beginner imperative language, into C++ source text."
	app.Authors = []string{"bearlangc contributors"}
	app.Since = 2026

	var (
		outFile    string
		emitCinTie bool
		emitBool   bool
	)

	fs := app.FlagSet
	fs.String(&outFile, "output", "o", "", "Write the translated C++ to <file> instead of stdout.", "file")
	fs.Bool(&emitCinTie, "cin-tie", "", false, "Emit std::cin.tie(nullptr) in the preamble.")
	fs.Bool(&emitBool, "boolalpha", "", false, "Emit std::cout << std::boolalpha in the preamble.")

	app.Action = func(inputFiles []string) error {
		if len(inputFiles) != 1 {
			return fmt.Errorf("expected exactly one input file, got %d", len(inputFiles))
		}

		source, err := os.ReadFile(inputFiles[0])
		if err != nil {
			return fmt.Errorf("could not read file '%s': %w", inputFiles[0], err)
		}

		cfg := config.New()
		cfg.Set(config.EmitCinTie, emitCinTie)
		cfg.Set(config.EmitBoolalpha, emitBool)

		cpp, err := bearlangc.TranslateWithConfig(string(source), cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, diag.Render(string(source), err))
			return err
		}

		if outFile == "" {
			fmt.Print(cpp)
			return nil
		}
		if err := os.WriteFile(outFile, []byte(cpp), 0o644); err != nil {
			return fmt.Errorf("could not write file '%s': %w", outFile, err)
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
