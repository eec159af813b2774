// Package importer implements the spreadsheet-to-contacts import pipeline:
// sheet shape detection, per-column preview sampling, column classification,
// row mapping and the bulk import itself.
package importer

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/database/contacts"
	"github.com/newsai/tabulae/internal/database/files"
	"github.com/newsai/tabulae/internal/database/lists"
	"github.com/newsai/tabulae/internal/database/publications"
	"github.com/newsai/tabulae/internal/entities"
)

// ErrHeaderCountMismatch is returned when the submitted header mapping does
// not cover every detected spreadsheet column. The text is part of the API
// contract and surfaced verbatim to clients.
var ErrHeaderCountMismatch = errors.New("Number of headers does not match the ones for the sheet")

// Service drives a full spreadsheet import into a media list.
type Service struct {
	db *gorm.DB
}

// NewService creates an import service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Result summarizes one import run.
type Result struct {
	ContactsCreated   int
	CustomFieldsSaved int
	FieldsMapCreated  int
	Columns           int
}

// Run imports every data row of the sheet into the media list. The file must
// already carry the user's header mapping. The row at the detected start
// position is the header row and is not imported.
//
// All writes happen inside one transaction: a failure anywhere leaves no
// partially imported list. The list's prior contact membership is replaced,
// not merged.
func (s *Service) Run(file *entities.File, list *entities.MediaList, rows [][]string, userID, teamID uint) (*Result, error) {
	start, columns := SheetShape(rows)

	if len(file.HeaderNames) != columns {
		return nil, ErrHeaderCountMismatch
	}

	result := &Result{Columns: columns}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pubRepo := publications.NewRepository(tx)
		contactRepo := contacts.NewRepository(tx)
		listRepo := lists.NewRepository(tx)
		fileRepo := files.NewRepository(tx)

		// Map every data row. Rows are padded to the detected column count
		// so trailing empty cells still produce "" values.
		var mapped []RowResult
		for _, row := range dataRows(rows, start) {
			rr, err := MapRow(file.Order, padRow(row, columns), userID, teamID, pubRepo)
			if err != nil {
				return fmt.Errorf("failed to map row: %w", err)
			}
			mapped = append(mapped, rr)
		}

		// Bulk-create all custom field drafts in one insert, remembering each
		// row's slice offset for positional re-attachment below.
		var fieldDrafts []entities.CustomContactField
		offsets := make([]int, len(mapped))
		for i, rr := range mapped {
			offsets[i] = len(fieldDrafts)
			fieldDrafts = append(fieldDrafts, rr.CustomFields...)
		}
		savedFields, err := contactRepo.CreateCustomFields(fieldDrafts)
		if err != nil {
			return fmt.Errorf("failed to create custom fields: %w", err)
		}

		// Batch-create contacts. The batch preserves row order, which the
		// positional attachment of side lists depends on.
		drafts := make([]entities.Contact, len(mapped))
		for i, rr := range mapped {
			drafts[i] = rr.Contact
		}
		created, err := contactRepo.CreateBatch(drafts)
		if err != nil {
			return fmt.Errorf("failed to create contacts: %w", err)
		}

		for i := range created {
			rr := mapped[i]

			if n := len(rr.CustomFields); n > 0 {
				if err := contactRepo.SetCustomFields(&created[i], savedFields[offsets[i]:offsets[i]+n]); err != nil {
					return fmt.Errorf("failed to attach custom fields: %w", err)
				}
			}
			if len(rr.Employers) > 0 {
				if err := contactRepo.SetEmployers(&created[i], rr.Employers); err != nil {
					return fmt.Errorf("failed to attach employers: %w", err)
				}
			}
			if len(rr.PastEmployers) > 0 {
				if err := contactRepo.SetPastEmployers(&created[i], rr.PastEmployers); err != nil {
					return fmt.Errorf("failed to attach past employers: %w", err)
				}
			}
		}

		// One field-map entry per non-ignored custom column. Deduplication is
		// by column position: two columns mapped to the same token produce
		// two entries.
		for i, token := range file.Order {
			if token == IgnoreColumn || !IsCustomField(token) {
				continue
			}
			name := ""
			if i < len(file.HeaderNames) {
				name = file.HeaderNames[i]
			}
			entry := &entities.CustomFieldsMap{
				Name:        name,
				Value:       token,
				CustomField: true,
				Hidden:      false,
			}
			if err := listRepo.AddFieldsMapEntry(list, entry); err != nil {
				return fmt.Errorf("failed to create fields map entry: %w", err)
			}
			result.FieldsMapCreated++
		}

		if err := listRepo.ReplaceContacts(list, created); err != nil {
			return fmt.Errorf("failed to set list contacts: %w", err)
		}

		if err := fileRepo.MarkImported(file); err != nil {
			return fmt.Errorf("failed to mark file imported: %w", err)
		}

		result.ContactsCreated = len(created)
		result.CustomFieldsSaved = len(savedFields)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// dataRows returns the rows after the header row at the start position.
func dataRows(rows [][]string, start int) [][]string {
	if start+1 >= len(rows) {
		return nil
	}
	return rows[start+1:]
}

// padRow extends a row with empty cells up to the column count. The xlsx
// reader drops trailing empty cells, but the mapping expects every column
// to be addressable.
func padRow(row []string, columns int) []string {
	if len(row) >= columns {
		return row
	}
	padded := make([]string, columns)
	copy(padded, row)
	return padded
}
