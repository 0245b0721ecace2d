package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"celebrai-backend/internal/contractdoc"
	"celebrai-backend/pkg/logger"
	"celebrai-backend/pkg/pdfexport"
	"celebrai-backend/pkg/validation"
)

type renderOptions struct {
	input     string
	outDir    string
	name      string
	signature string
	signedAt  string
	timezone  string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a contract PDF from a JSON or YAML file",
		Example: `  contractctl render --input festa.yaml --out ./pdfs
  contractctl render --input festa.json --out . --signature assinatura.png --signed-at 2026-03-05T15:04:05-03:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runRender(opts, time.Now)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "contract data file (.json, .yaml, .yml)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.name, "name", "", "output filename (default contrato-<client>.pdf)")
	cmd.Flags().StringVar(&opts.signature, "signature", "", "PNG or JPEG signature image")
	cmd.Flags().StringVar(&opts.signedAt, "signed-at", "", "signature time, RFC3339")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "America/Sao_Paulo", "zone for printed dates")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// runRender writes the PDF and returns its path.
func runRender(opts renderOptions, now func() time.Time) (string, error) {
	data, err := LoadContractData(opts.input)
	if err != nil {
		return "", err
	}

	if opts.signature != "" {
		if data.SignatureImage, err = SignatureDataURL(opts.signature); err != nil {
			return "", err
		}
	}
	if opts.signedAt != "" {
		if data.SignedAt, err = parseSignedAt(opts.signedAt); err != nil {
			return "", err
		}
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now()
	}

	if err := validation.New().Struct(data); err != nil {
		return "", errors.New(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		logger.Log.Warn("Unknown timezone, using default", "timezone", opts.timezone, "error", err)
		loc = contractdoc.DefaultLocation()
	}

	exporter := pdfexport.NewExporter(contractdoc.WithLocation(loc), contractdoc.WithClock(now))
	path, err := exporter.DownloadToFile(opts.outDir, data, opts.name)
	if err != nil {
		return "", err
	}
	logger.Log.Info("Contract rendered", "client", data.ClientName, "path", path)
	return path, nil
}
