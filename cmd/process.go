// Package cmd — process command.
// This is the main command that orchestrates the pipeline:
// read → normalize → chunk → render → write.
//
// It handles input source selection, renderer selection, and chunk size coercion.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/chunkpipe/core"
	"github.com/gaurav-prasanna/chunkpipe/core/chunk"
	"github.com/gaurav-prasanna/chunkpipe/core/extract"
	"github.com/gaurav-prasanna/chunkpipe/core/fetch"
	"github.com/gaurav-prasanna/chunkpipe/core/markdown"
	"github.com/gaurav-prasanna/chunkpipe/core/output"
	"github.com/gaurav-prasanna/chunkpipe/core/preprocess"
	"github.com/gaurav-prasanna/chunkpipe/core/render"
	"github.com/gaurav-prasanna/chunkpipe/crawl"
	"github.com/gaurav-prasanna/chunkpipe/logger"
)

// Flag variables.
var (
	flagText           string
	flagURL            string
	flagChunkSize      string
	flagTxt            bool
	flagMarkdown       bool
	flagJSON           bool
	flagPDF            bool
	flagEmbeddings     bool
	flagNameFromSource bool
	flagPrint          bool
	flagAll            bool
	flagMaxPages       int
)

var processCmd = &cobra.Command{
	Use:   "process [file|-]",
	Short: "Normalize text and write it as numbered word chunks",
	Long: `Process reads text from a file, stdin, --text or --url, normalizes it
(punctuation stripped, whitespace collapsed, lowercased), splits it into
chunks of --chunk_size words, and writes processed_chunks.txt.

An invalid or non-positive --chunk_size falls back to 10.

Examples:
  chunkpipe process notes.txt
  cat notes.txt | chunkpipe process --chunk_size 50 --print
  chunkpipe process --text "Hello, World! This is a TEST." --chunk_size 3
  chunkpipe process --url https://example.com/blog/post --json --name-from-source
  chunkpipe process --url https://docs.example.com --all --max-pages 20
  chunkpipe process notes.txt --embeddings --model nomic-embed-text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Input flags.
	processCmd.Flags().StringVar(&flagText, "text", "", "Process this text instead of a file")
	processCmd.Flags().StringVar(&flagURL, "url", "", "Fetch a web page and process its main content")
	processCmd.Flags().BoolVar(&flagAll, "all", false, "With --url, discover the site's pages and process each one")
	processCmd.Flags().IntVar(&flagMaxPages, "max-pages", crawl.DefaultMaxPages, "Maximum pages to process with --all")

	// Chunking. A string so bad input can be coerced instead of rejected.
	processCmd.Flags().StringVar(&flagChunkSize, "chunk_size", "10", "Words per chunk (invalid values fall back to 10)")

	// Output format flags (mutually exclusive; text when none is given).
	processCmd.Flags().BoolVar(&flagTxt, "txt", false, "Output numbered text lines (default)")
	processCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	processCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	processCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	processCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings for each chunk")
	processCmd.Flags().String("model", "", "Embedding model (required with --embeddings)")

	// Output location.
	processCmd.Flags().String("output_dir", "", "Output directory (default: current directory)")
	processCmd.Flags().BoolVar(&flagNameFromSource, "name-from-source", false, "Name the output after the input file or URL")
	processCmd.Flags().BoolVar(&flagPrint, "print", false, "Also print the numbered chunks to stdout")
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := validateProcessFlags(cmd, args); err != nil {
		return err
	}
	ctx := cmd.Context()
	log := logger.GetDefault()

	renderer := selectRenderer()
	if flagAll {
		return runAll(cmd, renderer)
	}

	source, raw, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	doc := preprocess.Run(source, raw, chunk.ParseSize(flagChunkSize))
	log.Debug("preprocessed input", "source", source, "words", doc.WordCount, "chunks", doc.ChunkCount, "chunk_size", doc.ChunkSize)

	data, err := renderer.Render(ctx, doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := output.New(appConfig.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	name := output.DefaultBaseName
	if flagNameFromSource {
		name = output.FilenameFor(source)
	}
	path, err := writer.Write(name+renderer.Extension(), data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagPrint {
		fmt.Fprintln(out, "Processed Chunks:")
		if err := render.WriteNumbered(out, doc.Chunks); err != nil {
			return err
		}
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Written: %s\n", path)
	fmt.Fprintf(out, "  Word Count: %d  Chunk Count: %d  Chunk Size: %d\n", doc.WordCount, doc.ChunkCount, doc.ChunkSize)

	log.Info("processed", "source", source, "path", path, "chunks", doc.ChunkCount)
	return nil
}

// runAll discovers pages under --url and writes one output file per page.
// A page that fails is logged and skipped; the run fails only if every page does.
func runAll(cmd *cobra.Command, renderer core.Renderer) error {
	ctx := cmd.Context()
	log := logger.GetDefault()
	out := cmd.OutOrStdout()

	fetcher := fetch.New(appConfig.Fetch.Timeout, appConfig.Fetch.UserAgent)
	urls, err := crawl.Discover(ctx, flagURL, fetcher, flagMaxPages)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(out, "Discovered %d pages\n", len(urls))

	writer, err := output.New(appConfig.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	size := chunk.ParseSize(flagChunkSize)
	extractor, converter := extract.New(), markdown.New()
	var failed int
	for i, pageURL := range urls {
		path, err := processPage(ctx, pageURL, size, fetcher, extractor, converter, renderer, writer)
		if err != nil {
			failed++
			log.Warn("page failed", "url", pageURL, "err", err)
			color.New(color.FgYellow).Fprintf(out, "  [%d/%d] ✗ %s\n", i+1, len(urls), pageURL)
			continue
		}
		fmt.Fprintf(out, "  [%d/%d] %s → %s\n", i+1, len(urls), pageURL, path)
	}

	if failed == len(urls) {
		return fmt.Errorf("all %d pages failed", failed)
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Processed %d of %d pages\n", len(urls)-failed, len(urls))
	return nil
}

func processPage(
	ctx context.Context,
	pageURL string,
	size int,
	fetcher core.Fetcher,
	extractor core.Extractor,
	converter core.Converter,
	renderer core.Renderer,
	writer *output.Writer,
) (string, error) {
	text, err := fetchText(ctx, pageURL, fetcher, extractor, converter)
	if err != nil {
		return "", err
	}
	doc := preprocess.Run(pageURL, text, size)
	data, err := renderer.Render(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return writer.Write(output.FilenameFor(pageURL)+renderer.Extension(), data)
}

// readInput resolves the single input source to a label and its raw text.
func readInput(ctx context.Context, cmd *cobra.Command, args []string) (string, string, error) {
	switch {
	case flagURL != "":
		text, err := fetchText(ctx, flagURL,
			fetch.New(appConfig.Fetch.Timeout, appConfig.Fetch.UserAgent),
			extract.New(),
			markdown.New(),
		)
		return flagURL, text, err
	case cmd.Flags().Changed("text"):
		return "inline", flagText, nil
	case len(args) == 0 || args[0] == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", string(b), nil
	default:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return args[0], string(b), nil
	}
}

// fetchText runs a URL through fetch → extract → convert and returns
// Markdown ready for normalization.
func fetchText(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	converter core.Converter,
) (string, error) {
	// 1. Fetch
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract main content
	content, err := extractor.Extract(result.HTML)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}

	// 3. Convert to Markdown
	md, err := converter.Convert(content)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	return md, nil
}

// validateProcessFlags checks that at most one input source and one
// output format are chosen.
func validateProcessFlags(cmd *cobra.Command, args []string) error {
	sources := len(args)
	if cmd.Flags().Changed("text") {
		sources++
	}
	if flagURL != "" {
		sources++
		parsed, err := url.Parse(flagURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", flagURL)
		}
	}
	if sources > 1 {
		return fmt.Errorf("only one input allowed: a file argument, --text, or --url")
	}
	if flagAll && flagURL == "" {
		return fmt.Errorf("--all requires --url")
	}

	formatCount := 0
	for _, set := range []bool{flagTxt, flagMarkdown, flagJSON, flagPDF, flagEmbeddings} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagEmbeddings && appConfig.Embeddings.Model == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() core.Renderer {
	switch {
	case flagMarkdown:
		return render.ForFormat(render.FormatMarkdown)
	case flagJSON:
		return render.ForFormat(render.FormatJSON)
	case flagPDF:
		return render.ForFormat(render.FormatPDF)
	case flagEmbeddings:
		emb := render.NewOllamaEmbedder(appConfig.Embeddings.URL, appConfig.Embeddings.Timeout)
		return render.NewEmbeddingsRenderer(appConfig.Embeddings.Model, emb)
	default:
		return render.ForFormat(render.FormatText)
	}
}
