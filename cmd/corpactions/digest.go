package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shanehull/corpactions/internal/ai"
	"github.com/shanehull/corpactions/internal/notify"
)

func newDigestCmd(opts *rootOptions) *cobra.Command {
	var (
		q         queryFlags
		summarize bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "digest [company...]",
		Short: "Email a digest of filtered announcements",
		RunE: func(cmd *cobra.Command, args []string) error {
			smtp := opts.cfg.SMTP
			emailConfig := notify.EmailConfig{
				SMTPServer: smtp.Server,
				SMTPPort:   smtp.Port,
				SMTPUser:   smtp.User,
				SMTPPass:   smtp.Pass,
				FromEmail:  smtp.From,
				ToEmail:    smtp.To,
				Enabled:    smtp.Enabled(),
			}
			if !dryRun && !emailConfig.Enabled {
				return errors.New("SMTP is not configured; set CORPACTIONS_SMTP_* or use --dry-run")
			}

			results, query, err := opts.lookup(cmd, args, &q)
			if err != nil {
				return err
			}

			data := notify.DigestData{
				GeneratedAt: opts.now(),
				Range:       query.Range.String(),
			}
			for _, r := range results {
				cd := notify.CompanyDigest{Result: r}
				if summarize && len(r.Records) > 0 {
					analysis, err := ai.Summarize(cmd.Context(), opts.cfg.Gemini.APIKey, opts.cfg.Gemini.Model, r.Company, r.Records)
					if err != nil {
						opts.logger.Warn("AI summary failed", zap.String("company", r.Company.Name), zap.Error(err))
					} else {
						cd.Analysis = analysis
					}
				}
				data.Companies = append(data.Companies, cd)
			}

			msg, err := notify.NewHTMLEmailRenderer().Render(data)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s", msg.Subject, msg.Text)
				return nil
			}
			return notify.NewEmailSender(emailConfig, opts.logger.Named("email")).Send(msg)
		},
	}

	q.register(cmd)
	cmd.Flags().BoolVar(&summarize, "summarize", false, "add a Gemini summary per company (needs GEMINI_API_KEY)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the digest instead of sending it")
	return cmd
}
