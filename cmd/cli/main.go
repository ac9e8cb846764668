// Command cli is a one-shot command line front for the image pipeline: it
// parses the prompt (flags included) exactly like the bot and prints the
// resulting markdown.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ideogram-ai-bot/internal/httpclient"
	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/pipeline"
	"ideogram-ai-bot/internal/replicate"
)

var (
	tokenFlag   string
	modelFlag   string
	timeoutSecs int
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "ideogram [prompt...]",
		Short: "Generate an image from a prompt via the Replicate Ideogram API",
		Long: "Generates an image from a free-form prompt. The prompt may carry the same flags\n" +
			"the bot understands: --style <name>, --aspect <w:h>, --res <WxH>. Quote them or\n" +
			"put them after \"--\" so they are not parsed as CLI flags.",
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerate,
	}

	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "Replicate API token (falls back to REPLICATE_API_TOKEN, then the config file)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to run (default ideogram-ai/ideogram-v2a)")
	rootCmd.Flags().IntVar(&timeoutSecs, "timeout", 120, "Request timeout in seconds")

	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "List the available styles, aspect ratios and resolutions",
		Run:   runOptions,
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Save the API token and model to the config file",
		RunE:  runSetup,
	}

	rootCmd.AddCommand(optionsCmd, setupCmd)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := resolveToken(cfg)
	if err != nil {
		return err
	}

	model := strings.TrimSpace(modelFlag)
	if model == "" {
		model = cfg.Model
	}

	timeout := time.Duration(timeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	// Only errors end up on the terminal log; the markdown goes to stdout.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rep := replicate.New(replicate.Options{
		APIToken:   token,
		Model:      model,
		HTTPClient: httpclient.New(httpclient.Options{PreferIPv4: true, Timeout: timeout}),
		Logger:     logger,
	})

	pipe := pipeline.New(pipeline.Options{
		Generator: rep,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := strings.Join(args, " ")
	color.New(color.FgCyan).Fprintln(os.Stderr, "🎨 Generating…")

	res, err := pipe.Generate(ctx, prompt)
	if err != nil {
		// Match the bot's rendering so scripts see the same line.
		fmt.Println(pipeline.FormatError(err))
		os.Exit(1)
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "✔ %s · %s · %s\n",
		res.Request.Style, res.Request.AspectRatio, res.Request.Resolution)
	fmt.Println(pipeline.FormatImage(res.ImageURL))
	return nil
}

func runOptions(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan)

	cyan.Println("Styles:")
	fmt.Printf("  %s\n\n", strings.Join(params.Styles.Names(), ", "))

	cyan.Println("Aspect ratios:")
	fmt.Printf("  %s\n\n", strings.Join(params.AspectRatios.Names(), ", "))

	cyan.Println("Resolutions:")
	var line []string
	for _, r := range params.SupportedResolutions() {
		line = append(line, r.String())
		if len(line) == 8 {
			fmt.Printf("  %s\n", strings.Join(line, ", "))
			line = nil
		}
	}
	if len(line) > 0 {
		fmt.Printf("  %s\n", strings.Join(line, ", "))
	}
}

func runSetup(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if strings.TrimSpace(tokenFlag) != "" {
		cfg.APIToken = strings.TrimSpace(tokenFlag)
	}
	if strings.TrimSpace(modelFlag) != "" {
		cfg.Model = strings.TrimSpace(modelFlag)
	}
	if cfg.APIToken == "" {
		return fmt.Errorf("nothing to save: pass --token")
	}

	path, err := saveConfig(cfg)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Printf("✔ Saved %s\n", path)
	return nil
}

func resolveToken(cfg *config) (string, error) {
	if t := strings.TrimSpace(tokenFlag); t != "" {
		return t, nil
	}
	if t := strings.TrimSpace(os.Getenv("REPLICATE_API_TOKEN")); t != "" {
		return t, nil
	}
	if cfg.APIToken != "" {
		return cfg.APIToken, nil
	}
	return "", fmt.Errorf("no API token found: pass --token, set REPLICATE_API_TOKEN or run: ideogram setup --token <token>")
}
