// Package seed populates demo content for newly registered accounts.
package seed

import (
	"context"
	"log"

	"taskboard/internal/service"

	"github.com/google/uuid"
)

const demoBoardTitle = "Welcome Board"

var demoBoardDescription = "A sample board to help you get started"

// demoCards maps a column index in the freshly created board to the cards
// seeded into it.
var demoCards = map[int][]struct {
	title       string
	description string
}{
	0: {
		{"Explore your board", "Drag cards between columns to track progress"},
		{"Invite your team", "Add members from the board settings to collaborate"},
	},
	1: {
		{"Customize columns", "Rename columns or collapse the ones you are not using"},
	},
	2: {
		{"Create your first board", "You can duplicate this one as a starting point"},
	},
}

// DemoSeeder creates a starter board with example cards for a new user.
type DemoSeeder struct {
	boards *service.BoardService
	cards  *service.CardService
}

func NewDemoSeeder(boards *service.BoardService, cards *service.CardService) *DemoSeeder {
	return &DemoSeeder{boards: boards, cards: cards}
}

// OnboardNewUser builds the demo board. Any failure is logged and swallowed
// so that registration itself never depends on the seed.
func (s *DemoSeeder) OnboardNewUser(ctx context.Context, userID uuid.UUID) {
	detail, err := s.boards.CreateBoard(ctx, service.CreateBoardInput{
		Title:       demoBoardTitle,
		Description: &demoBoardDescription,
		OwnerID:     userID,
	})
	if err != nil {
		log.Printf("⚠️  Demo board seed failed for user %s: %v", userID, err)
		return
	}

	for idx, cards := range demoCards {
		if idx >= len(detail.Columns) {
			continue
		}
		columnID := detail.Columns[idx].ID
		for _, card := range cards {
			desc := card.description
			_, err := s.cards.CreateCard(ctx, columnID, userID, service.CreateCardInput{
				Title:       card.title,
				Description: &desc,
			})
			if err != nil {
				log.Printf("⚠️  Demo card seed failed for user %s: %v", userID, err)
			}
		}
	}
}
