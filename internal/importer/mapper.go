package importer

import (
	"strings"

	"github.com/newsai/tabulae/internal/entities"
)

// PublicationResolver resolves an employer name to a publication, creating
// one when absent. Creation is attributed to the given user.
type PublicationResolver interface {
	GetOrCreateByName(name string, createdBy uint) (*entities.Publication, error)
}

// RowResult is one spreadsheet row mapped to entity drafts. The contact is
// always populated; the side lists hold custom fields and employer links to
// attach after the contact is persisted.
type RowResult struct {
	Contact       entities.Contact
	CustomFields  []entities.CustomContactField
	Employers     []entities.Publication
	PastEmployers []entities.Publication
}

// MapRow converts one data row using the finalized column→token mapping.
// Only indices covered by both the mapping and the row are considered, so a
// short mapping or a short row never panics. Malformed cells degrade to ""
// rather than failing the row; the only error source is publication lookup.
func MapRow(order []string, row []string, userID, teamID uint, pubs PublicationResolver) (RowResult, error) {
	result := RowResult{
		Contact: entities.Contact{CreatedBy: userID, TeamID: teamID},
	}

	n := len(order)
	if len(row) < n {
		n = len(row)
	}

	for i := 0; i < n; i++ {
		token := order[i]
		if token == IgnoreColumn {
			continue
		}

		value := strings.TrimSpace(row[i])

		switch token {
		case "firstname":
			result.Contact.FirstName = value
		case "lastname":
			result.Contact.LastName = value
		case "email":
			result.Contact.Email = value
		case "notes":
			result.Contact.Notes = value
		case "linkedin":
			result.Contact.LinkedIn = value
		case "twitter":
			result.Contact.Twitter = value
		case "instagram":
			result.Contact.Instagram = value
		case "website":
			result.Contact.Website = value
		case "blog":
			result.Contact.Blog = value
		case "location":
			result.Contact.Location = value
		case "phonenumber":
			result.Contact.PhoneNumber = value
		case "employers", "pastemployers":
			if value == "" {
				continue
			}
			pub, err := pubs.GetOrCreateByName(value, userID)
			if err != nil {
				return RowResult{}, err
			}
			if token == "employers" {
				result.Employers = append(result.Employers, *pub)
			} else {
				result.PastEmployers = append(result.PastEmployers, *pub)
			}
		default:
			result.CustomFields = append(result.CustomFields, entities.CustomContactField{
				Name:      token,
				Value:     value,
				CreatedBy: userID,
			})
		}
	}

	return result, nil
}
