// Copyright (c) 2026 Undervalued Books. All rights reserved.

package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/platform/mailer"
	"github.com/undervaluedbooks/api/internal/platform/validate"
	"github.com/undervaluedbooks/api/internal/users/auth"
	"github.com/undervaluedbooks/api/pkg/slug"
)

// Catalog is the slice of the catalog service the workflow writes through.
type Catalog interface {
	CreateBook(ctx context.Context, title, author, description, readBookLink string) (*book.Book, error)
}

// SubmitterDirectory resolves submitter accounts for notifications.
// Satisfied by auth.PostgresUserRepository.
type SubmitterDirectory interface {
	FindByID(ctx context.Context, id int64) (*auth.User, error)
}

// Service implements the submission review workflow.
type Service struct {
	catalog     Catalog
	users       SubmitterDirectory
	mail        mailer.Sender
	masterEmail string
	siteBaseURL string
	logger      *slog.Logger
}

// NewService constructs the moderation service.
func NewService(
	catalog Catalog,
	users SubmitterDirectory,
	mail mailer.Sender,
	masterEmail string,
	siteBaseURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:     catalog,
		users:       users,
		mail:        mail,
		masterEmail: masterEmail,
		siteBaseURL: siteBaseURL,
		logger:      logger,
	}
}

// Submit mails the proposed book to the moderator for review. Nothing is
// persisted; the submission lives in the email until a verdict.
func (service *Service) Submit(ctx context.Context, submitterID int64, submission Submission) error {
	v := &validate.Validator{}
	err := v.
		Required(FieldTitle, submission.Title).
		MaxLen(FieldTitle, submission.Title, book.MaxTitleLen).
		Required(FieldAuthor, submission.Author).
		MaxLen(FieldAuthor, submission.Author, book.MaxAuthorLen).
		MaxLen(FieldDescription, submission.Description, book.MaxDescriptionLen).
		Err()
	if err != nil {
		return err
	}

	reviewLink := fmt.Sprintf("%s/master/addbook/%s/%s/%d",
		service.siteBaseURL, slug.From(submission.Title), slug.From(submission.Author), submitterID,
	)

	body := fmt.Sprintf(
		"Submitter ID: %d\r\n\r\n"+
			"Title: %s\r\nAuthor: %s\r\nDescription: %s\r\n\r\n"+
			"Review:\r\n%s\r\n",
		submitterID,
		submission.Title, submission.Author, submission.Description,
		reviewLink,
	)

	if err := service.mail.Send(ctx, service.masterEmail, "Book Review Request", body); err != nil {
		return fmt.Errorf("moderation_submit_email_failed: %w", err)
	}

	service.logger.Info("book_submitted_for_review",
		slog.Int64("submitter_id", submitterID),
		slog.String("title", submission.Title),
	)

	return nil
}

// Approve adds the submitted book to the catalog and notifies the
// submitter. Catalog write first; an approval email is best effort once the
// book exists.
func (service *Service) Approve(ctx context.Context, submitterID int64, submission Submission, readBookLink string) (*book.Book, error) {
	if err := (&validate.Validator{}).PositiveID(FieldSubmitterID, submitterID).Err(); err != nil {
		return nil, err
	}

	submitter, err := service.users.FindByID(ctx, submitterID)
	if err != nil {
		return nil, err
	}

	created, err := service.catalog.CreateBook(ctx, submission.Title, submission.Author, submission.Description, readBookLink)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Dear %s,\r\n\r\n"+
			"Your book submission for \"%s by %s\" has been approved. "+
			"You can view it here: %s/books/%s\r\n\r\n"+
			"Thank you for your contribution!\r\n\r\nSincerely,\r\nUndervalued Books\r\n",
		submitter.Username, created.Title, created.Author,
		service.siteBaseURL, slug.From(created.Title),
	)
	if err := service.mail.Send(ctx, submitter.Email, "Book Submission Approved", body); err != nil {
		service.logger.Error("approval_email_send_failed",
			slog.Int64("book_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}

// Reject notifies the submitter that their book was not accepted. No
// catalog state changes.
func (service *Service) Reject(ctx context.Context, submitterID int64, title, author string) error {
	v := &validate.Validator{}
	err := v.
		PositiveID(FieldSubmitterID, submitterID).
		Required(FieldTitle, title).
		Required(FieldAuthor, author).
		Err()
	if err != nil {
		return err
	}

	submitter, err := service.users.FindByID(ctx, submitterID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Your book submission for \"%s by %s\" has been rejected.\r\n\r\n"+
			"If you have any questions or concerns, please contact us.\r\n\r\n"+
			"Sincerely,\r\nUndervalued Books\r\n",
		submitter.Username, title, author,
	)
	if err := service.mail.Send(ctx, submitter.Email, "Book Submission Rejected", body); err != nil {
		return fmt.Errorf("moderation_reject_email_failed: %w", err)
	}

	service.logger.Info("book_submission_rejected",
		slog.Int64("submitter_id", submitterID),
		slog.String("title", title),
	)

	return nil
}
