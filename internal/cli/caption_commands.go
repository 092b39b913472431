package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"vidprep/internal/caption"
	"vidprep/internal/settings"
)

func runTrigger(args []string) error {
	fs := flag.NewFlagSet("trigger", flag.ContinueOnError)
	input := fs.String("input", "", "folder containing MP4 files")
	word := fs.String("word", "", "trigger word to write (defaults to the configured one)")
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" {
		fs.Usage()
		return errors.New("--input is required")
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}
	triggerWord := strings.TrimSpace(*word)
	if triggerWord == "" {
		triggerWord = cfg.TriggerWord
	}
	if triggerWord == "" {
		return errors.New("no trigger word given (--word) and none configured")
	}

	created, err := caption.WriteTriggerFiles(*input, triggerWord, os.Stdout)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{"trigger_word": triggerWord, "created": created})
	}
	fmt.Printf("trigger_word: %s\n", triggerWord)
	fmt.Printf("created: %d\n", created)
	return nil
}

func runCSV2Txt(args []string) error {
	fs := flag.NewFlagSet("csv2txt", flag.ContinueOnError)
	input := fs.String("input", "", "CSV file path")
	output := fs.String("output", "", "output folder for .txt files")
	nameCol := fs.String("filename-column", "file_name", "column holding the output file name")
	textCol := fs.String("text-column", "text", "column holding the file contents")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" || strings.TrimSpace(*output) == "" {
		fs.Usage()
		return errors.New("--input and --output are required")
	}

	created, err := caption.ExtractCSV(caption.CSVOptions{
		CSVPath:        *input,
		OutputDir:      *output,
		FilenameColumn: *nameCol,
		TextColumn:     *textCol,
		Out:            os.Stdout,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{"created": created, "output_dir": *output})
	}
	return nil
}
