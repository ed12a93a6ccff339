package registry

import (
	"errors"
	"sync"
)

// Expected, recoverable outcomes of registry operations.
// The bot translates them into user-facing messages
var (
	ErrNotFound  = errors.New("no raid with that id")
	ErrForbidden = errors.New("only the creator or an admin can do that")
	ErrCancelled = errors.New("raid is cancelled")
)

type RaidId uint64

type Status int

const (
	StatusOpen Status = iota
	StatusCancelled
)

func (status Status) String() string {
	switch status {
	case StatusOpen:
		return "Open"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// A raid as stored by the registry. ScheduledAt is an opaque
// display string, the bot does not parse or validate it
type Raid struct {
	Id           RaidId
	Title        string
	CreatorId    string
	ScheduledAt  string
	Participants []string
	Status       Status
}

// Registry holds every raid created since the process started.
// Contents do not survive a restart, and that is fine: raids are
// short-lived coordination state, not data.
// Discordgo runs event handlers on separate goroutines,
// so every operation locks the registry
type Registry struct {
	mtx    sync.Mutex
	nextId RaidId
	raids  map[RaidId]*Raid
	order  []RaidId
}

func NewRegistry() *Registry {
	return &Registry{
		nextId: 1,
		raids:  map[RaidId]*Raid{},
	}
}

// Create a new raid. The creator joins their own raid automatically
func (reg *Registry) Create(title string, scheduledAt string, creatorId string) Raid {

	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	raid := &Raid{
		Id:           reg.nextId,
		Title:        title,
		CreatorId:    creatorId,
		ScheduledAt:  scheduledAt,
		Participants: []string{creatorId},
		Status:       StatusOpen,
	}
	reg.nextId++
	reg.raids[raid.Id] = raid
	reg.order = append(reg.order, raid.Id)

	return snapshot(raid)
}

// Join adds the user to the raid. Joining a raid you are
// already in is not an error
func (reg *Registry) Join(id RaidId, userId string) error {

	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	raid, ok := reg.raids[id]
	if !ok {
		return ErrNotFound
	}
	if raid.Status == StatusCancelled {
		return ErrCancelled
	}
	for _, participant := range raid.Participants {
		if participant == userId {
			return nil
		}
	}
	raid.Participants = append(raid.Participants, userId)
	return nil
}

// Leave removes the user from the raid. Leaving a raid you
// are not in is not an error
func (reg *Registry) Leave(id RaidId, userId string) error {

	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	raid, ok := reg.raids[id]
	if !ok {
		return ErrNotFound
	}
	if raid.Status == StatusCancelled {
		return ErrCancelled
	}
	for index, participant := range raid.Participants {
		if participant == userId {
			raid.Participants = append(raid.Participants[:index], raid.Participants[index+1:]...)
			return nil
		}
	}
	return nil
}

// Cancel closes the raid for good. Only the creator or an admin
// may cancel, and a cancelled raid accepts no further mutation
func (reg *Registry) Cancel(id RaidId, requesterId string, requesterIsAdmin bool) error {

	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	raid, ok := reg.raids[id]
	if !ok {
		return ErrNotFound
	}
	if requesterId != raid.CreatorId && !requesterIsAdmin {
		return ErrForbidden
	}
	if raid.Status == StatusCancelled {
		return ErrCancelled
	}
	raid.Status = StatusCancelled
	return nil
}

// Get returns a copy of the raid with the provided id
func (reg *Registry) Get(id RaidId) (Raid, error) {

	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	raid, ok := reg.raids[id]
	if !ok {
		return Raid{}, ErrNotFound
	}
	return snapshot(raid), nil
}

// List returns a copy of every raid, cancelled ones included,
// in creation order. Callers filter for display
func (reg *Registry) List() []Raid {

	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	raids := make([]Raid, 0, len(reg.order))
	for _, id := range reg.order {
		raids = append(raids, snapshot(reg.raids[id]))
	}
	return raids
}

// Copy a raid so that callers can never mutate registry state
func snapshot(raid *Raid) Raid {
	copied := *raid
	copied.Participants = append([]string{}, raid.Participants...)
	return copied
}
