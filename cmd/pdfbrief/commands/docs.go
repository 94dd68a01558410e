package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdfbrief/pdfbrief/internal/upload"
	"github.com/pdfbrief/pdfbrief/pkg/models"
)

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF for summarization",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runUpload,
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	// Single-file policy: extra arguments are ignored.
	path, _ := upload.First(args)

	attempt, err := upload.NewAttempt(path)
	if err != nil {
		return err
	}

	f, err := os.Open(attempt.Path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	result, err := a.client.Upload(context.Background(), attempt.Name, f)
	if err != nil {
		return fmt.Errorf("upload failed: %s", detailOrErr(err, "Failed to upload PDF"))
	}

	fmt.Printf("Uploaded %s (document %d). Processing started.\n", attempt.Name, result.DocumentID)
	return nil
}

// NewDocsCommand creates the docs command group
func NewDocsCommand() *cobra.Command {
	var skip, limit int
	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "List and inspect uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListDocuments(skip, limit)
		},
	}
	docsCmd.Flags().IntVar(&skip, "skip", 0, "Number of documents to skip")
	docsCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of documents to list")

	docsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one document and its summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowDocument,
	})
	docsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteDocument,
	})

	return docsCmd
}

func runListDocuments(skip, limit int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	docs, err := a.client.Documents(context.Background(), skip, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No documents found")
		return nil
	}

	fmt.Println("Documents:")
	fmt.Println("==========")
	for _, doc := range docs {
		marker := " "
		if doc.HasSummary {
			marker = "*"
		}
		pages := "-"
		if doc.PageCount != nil {
			pages = strconv.Itoa(*doc.PageCount)
		}
		fmt.Printf("%s %4d  %-40s %-10s %4sp  %s\n",
			marker, doc.ID, doc.OriginalFilename, doc.Status, pages,
			doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runShowDocument(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid document id '%s'", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	doc, err := a.client.Document(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	fmt.Printf("%s\n", doc.OriginalFilename)
	fmt.Printf("Status: %s\n", doc.Status)
	if doc.PageCount != nil {
		fmt.Printf("Pages: %d\n", *doc.PageCount)
	}
	fmt.Printf("Uploaded: %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))

	switch {
	case doc.Status == models.StatusFailed:
		fmt.Println("\nFailed to generate summary. Please try uploading the PDF again.")

	case doc.Summary != nil:
		summary := doc.Summary
		fmt.Println("\nSummary")
		fmt.Println("=======")
		fmt.Println(summary.Content)
		if summary.WordCount != nil {
			fmt.Printf("\nWords: %d\n", *summary.WordCount)
		}
		if summary.ProcessingTime != nil {
			fmt.Printf("Processing time: %.1fs\n", *summary.ProcessingTime)
		}
		if summary.EmailSent && summary.EmailSentAt != nil {
			fmt.Printf("Email sent: %s\n", summary.EmailSentAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("\nResend the email with 'pdfbrief resend %d'\n", summary.ID)

	default:
		fmt.Println("\nYour summary is being generated. Please check back shortly.")
	}
	return nil
}

func runDeleteDocument(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid document id '%s'", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.client.DeleteDocument(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	fmt.Printf("Deleted document %d\n", id)
	return nil
}

// NewSummariesCommand creates the summaries command
func NewSummariesCommand() *cobra.Command {
	var skip, limit int
	summariesCmd := &cobra.Command{
		Use:   "summaries",
		Short: "List generated summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListSummaries(skip, limit)
		},
	}
	summariesCmd.Flags().IntVar(&skip, "skip", 0, "Number of summaries to skip")
	summariesCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of summaries to list")
	return summariesCmd
}

func runListSummaries(skip, limit int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	summaries, err := a.client.Summaries(context.Background(), skip, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch summaries: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No summaries found")
		return nil
	}

	for _, summary := range summaries {
		words := "-"
		if summary.WordCount != nil {
			words = strconv.Itoa(*summary.WordCount)
		}
		emailed := "not emailed"
		if summary.EmailSent {
			emailed = "emailed"
		}
		fmt.Printf("%4d  %s words, %s, created %s\n",
			summary.ID, words, emailed, summary.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// NewResendCommand creates the resend command
func NewResendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resend <summary-id>",
		Short: "Re-send the summary notification email",
		Args:  cobra.ExactArgs(1),
		RunE:  runResend,
	}
}

func runResend(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid summary id '%s'", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.client.ResendEmail(context.Background(), id); err != nil {
		return fmt.Errorf("failed to send email: %s", detailOrErr(err, "Failed to send email"))
	}

	fmt.Println("Summary email sent")
	return nil
}
