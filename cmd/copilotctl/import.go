package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reading-copilot/internal/adapter/postgres"
	sentencerepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/sentence"
	textrepo "github.com/heartmarshall/reading-copilot/internal/adapter/postgres/text"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/pdf"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/webpage"
	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/service/reading"
)

func newImportCmd() *cobra.Command {
	var rawURL, pdfPath, title, user string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a web article or a PDF file as a new text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := asUser(cmd.Context(), user)
			if err != nil {
				return err
			}

			var data []byte
			if pdfPath != "" {
				if data, err = os.ReadFile(pdfPath); err != nil {
					return fmt.Errorf("read pdf: %w", err)
				}
			}

			b, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer b.Close()

			svc := reading.NewService(b.log,
				textrepo.New(b.pool),
				sentencerepo.New(b.pool),
				postgres.NewTxManager(b.pool),
				webpage.New(b.cfg.Reader.ImportTimeout, b.cfg.Reader.ImportMaxBytes),
				nil,
				reading.DefaultsFromConfig(b.cfg.Reader),
			).WithPDF(pdf.New(b.cfg.Reader.PDFMaxBytes))

			var text *domain.Text
			if pdfPath != "" {
				text, err = svc.ImportPDF(ctx, reading.ImportPDFInput{
					Filename: filepath.Base(pdfPath),
					Title:    title,
					Data:     data,
				})
			} else {
				text, err = svc.ImportFromURL(ctx, reading.ImportInput{URL: rawURL})
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported text %d: %s\n", text.ID, text.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "article URL")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "path of a text PDF")
	cmd.Flags().StringVar(&title, "title", "", "title of a PDF import (default: file name)")
	cmd.Flags().StringVar(&user, "user", "", "owner user id")
	cmd.MarkFlagsOneRequired("url", "pdf")
	cmd.MarkFlagsMutuallyExclusive("url", "pdf")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
