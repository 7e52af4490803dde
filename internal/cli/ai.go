package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/genai"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <property-id>",
		Short: "Write fresh listing copy with the AI helper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App, out io.Writer) error {
				text, err := a.DescribeProperty(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(out, map[string]string{"description": text})
				}
				fmt.Fprintln(out, text)
				return nil
			})
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var mimeType string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Summarize a document or image with the AI helper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}
			if mimeType == "" {
				mimeType = detectMime(args[0], data)
			}

			return withApp(cmd, func(a *app.App, out io.Writer) error {
				summary := a.Assistant().AnalyzeDocument(cmd.Context(), data, mimeType)
				if isJSON() {
					return printJSON(out, map[string]string{"summary": summary})
				}
				fmt.Fprintln(out, summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type (default: guessed from the file)")

	return cmd
}

// detectMime guesses a MIME type from the extension, then the content.
func detectMime(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return strings.SplitN(t, ";", 2)[0]
	}
	return strings.SplitN(http.DetectContentType(data), ";", 2)[0]
}

func newBannerCmd() *cobra.Command {
	var (
		ratio  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "banner <prompt>",
		Short: "Render a marketing banner with the AI helper",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ar := genai.AspectRatio(ratio)
			if !ar.IsValid() {
				return fmt.Errorf("invalid aspect ratio %q: must be 1:1, 4:3, 16:9 or 9:16", ratio)
			}
			prompt := strings.Join(args, " ")

			return withApp(cmd, func(a *app.App, out io.Writer) error {
				uri, ok := a.Assistant().GenerateBanner(cmd.Context(), prompt, ar)
				if isJSON() {
					var img *string
					if ok {
						img = &uri
					}
					return printJSON(out, map[string]*string{"image": img})
				}
				if !ok {
					fmt.Fprintln(out, "No banner was generated.")
					return nil
				}
				if output == "" {
					fmt.Fprintln(out, uri)
					return nil
				}
				return writeDataURI(output, uri)
			})
		},
	}

	cmd.Flags().StringVar(&ratio, "aspect", string(genai.Wide), "aspect ratio (1:1|4:3|16:9|9:16)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the image to this file instead of printing the data URI")

	return cmd
}

// writeDataURI decodes a base64 data URI and writes the payload to path.
func writeDataURI(path, uri string) error {
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok || !strings.HasPrefix(uri, "data:") {
		return fmt.Errorf("not a base64 data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decoding banner: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}
	return nil
}
