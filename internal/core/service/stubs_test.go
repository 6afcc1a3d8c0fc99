package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
	"github.com/skyrise-games/airport-tycoon/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *user
	r.byID[user.ID] = &clone
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) SetGameProfile(_ context.Context, userID, profileID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.GameProfileID = profileID
	return nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, userID, status string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) UsernamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			names[id] = u.Username
		}
	}
	return names, nil
}

type stubProfileRepo struct {
	byUser  map[string]*domain.GameProfile
	nextID  int
	saveErr error // if set, Save returns this error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUser: make(map[string]*domain.GameProfile)}
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.GameProfile) (*domain.GameProfile, error) {
	if _, ok := r.byUser[profile.UserID]; ok {
		return nil, domain.ErrProfileExists
	}
	r.nextID++
	profile.ID = fmt.Sprintf("profile-%d", r.nextID)
	clone := *profile
	r.byUser[profile.UserID] = &clone
	return profile, nil
}

func (r *stubProfileRepo) FindByUser(_ context.Context, userID string) (*domain.GameProfile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) Save(_ context.Context, profile *domain.GameProfile) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.byUser[profile.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	clone := *profile
	r.byUser[profile.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) TopByBalance(_ context.Context, limit int) ([]*domain.GameProfile, error) {
	out := make([]*domain.GameProfile, 0, len(r.byUser))
	for _, p := range r.byUser {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance > out[j].Balance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubAirportRepo struct {
	byID      map[string]*domain.Airport
	nextID    int
	occupyErr error // if set, OccupySpot returns this error
}

func newStubAirportRepo() *stubAirportRepo {
	return &stubAirportRepo{byID: make(map[string]*domain.Airport)}
}

func cloneAirport(a *domain.Airport) *domain.Airport {
	clone := *a
	clone.Runways = append([]domain.Runway(nil), a.Runways...)
	clone.ParkingSpots = append([]domain.ParkingSpot(nil), a.ParkingSpots...)
	clone.Facilities = append([]domain.Facility(nil), a.Facilities...)
	return &clone
}

func (r *stubAirportRepo) Create(_ context.Context, airport *domain.Airport) (*domain.Airport, error) {
	r.nextID++
	airport.ID = fmt.Sprintf("airport-%d", r.nextID)
	r.byID[airport.ID] = cloneAirport(airport)
	return airport, nil
}

func (r *stubAirportRepo) FindByID(_ context.Context, id string) (*domain.Airport, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAirportNotFound
	}
	return cloneAirport(a), nil
}

func (r *stubAirportRepo) FindFirstByOwner(_ context.Context, ownerID string) (*domain.Airport, error) {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.byID[id].OwnerID == ownerID {
			return cloneAirport(r.byID[id]), nil
		}
	}
	return nil, domain.ErrAirportNotFound
}

func (r *stubAirportRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Airport, error) {
	var out []*domain.Airport
	for _, a := range r.byID {
		if a.OwnerID == ownerID {
			out = append(out, cloneAirport(a))
		}
	}
	return out, nil
}

func (r *stubAirportRepo) FindNotOwnedBy(_ context.Context, ownerID string) ([]*domain.Airport, error) {
	var out []*domain.Airport
	for _, a := range r.byID {
		if a.OwnerID != ownerID {
			out = append(out, cloneAirport(a))
		}
	}
	return out, nil
}

func (r *stubAirportRepo) ListIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *stubAirportRepo) Save(_ context.Context, airport *domain.Airport) error {
	if _, ok := r.byID[airport.ID]; !ok {
		return domain.ErrAirportNotFound
	}
	r.byID[airport.ID] = cloneAirport(airport)
	return nil
}

// OccupySpot mirrors the conditional update of the real store: the spot is
// re-checked at write time, not at the caller's read.
func (r *stubAirportRepo) OccupySpot(_ context.Context, airportID string, spotType domain.SpotType, aircraftID string, until time.Time, serviceFee float64) error {
	if r.occupyErr != nil {
		return r.occupyErr
	}
	a, ok := r.byID[airportID]
	if !ok {
		return domain.ErrSpotConflict
	}
	for i := range a.ParkingSpots {
		s := &a.ParkingSpots[i]
		if s.Type == spotType && !s.Occupied {
			u := until
			s.Occupied = true
			s.OccupiedBy = aircraftID
			s.OccupiedUntil = &u
			a.Statistics.TotalIncome += serviceFee
			a.Statistics.TrafficCount++
			return nil
		}
	}
	return domain.ErrSpotConflict
}

func (r *stubAirportRepo) ClearExpiredSpots(_ context.Context, airportID string, now time.Time) error {
	a, ok := r.byID[airportID]
	if !ok {
		return domain.ErrAirportNotFound
	}
	for i := range a.ParkingSpots {
		s := &a.ParkingSpots[i]
		if s.Expired(now) {
			s.Occupied = false
			s.OccupiedBy = ""
			s.OccupiedUntil = nil
		}
	}
	return nil
}

func (r *stubAirportRepo) TopByLevelIncome(_ context.Context, limit int) ([]*domain.Airport, error) {
	out := make([]*domain.Airport, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneAirport(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		return out[i].Statistics.TotalIncome > out[j].Statistics.TotalIncome
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubAircraftRepo struct {
	byID   map[string]*domain.Aircraft
	nextID int
}

func newStubAircraftRepo() *stubAircraftRepo {
	return &stubAircraftRepo{byID: make(map[string]*domain.Aircraft)}
}

func cloneAircraft(a *domain.Aircraft) *domain.Aircraft {
	clone := *a
	if a.ActiveRoute != nil {
		route := *a.ActiveRoute
		clone.ActiveRoute = &route
	}
	return &clone
}

func (r *stubAircraftRepo) Create(_ context.Context, aircraft *domain.Aircraft) (*domain.Aircraft, error) {
	r.nextID++
	aircraft.ID = fmt.Sprintf("aircraft-%d", r.nextID)
	r.byID[aircraft.ID] = cloneAircraft(aircraft)
	return aircraft, nil
}

func (r *stubAircraftRepo) FindOwned(_ context.Context, aircraftID, ownerID string) (*domain.Aircraft, error) {
	a, ok := r.byID[aircraftID]
	if !ok || a.OwnerID != ownerID {
		return nil, domain.ErrAircraftNotFound
	}
	return cloneAircraft(a), nil
}

func (r *stubAircraftRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Aircraft, error) {
	var out []*domain.Aircraft
	for _, a := range r.byID {
		if a.OwnerID == ownerID {
			out = append(out, cloneAircraft(a))
		}
	}
	return out, nil
}

func (r *stubAircraftRepo) Save(_ context.Context, aircraft *domain.Aircraft) error {
	if _, ok := r.byID[aircraft.ID]; !ok {
		return domain.ErrAircraftNotFound
	}
	r.byID[aircraft.ID] = cloneAircraft(aircraft)
	return nil
}

func (r *stubAircraftRepo) MarkFreeFloating(_ context.Context, aircraftID string) error {
	a, ok := r.byID[aircraftID]
	if !ok {
		return domain.ErrAircraftNotFound
	}
	a.Status = domain.StatusParked
	a.CurrentLocation = ""
	return nil
}

func (r *stubAircraftRepo) FindDueArrivals(_ context.Context, now time.Time) ([]*domain.Aircraft, error) {
	var out []*domain.Aircraft
	for _, a := range r.byID {
		if a.Status == domain.StatusInFlight && a.ActiveRoute != nil && !a.ActiveRoute.ArrivalTime.After(now) {
			out = append(out, cloneAircraft(a))
		}
	}
	return out, nil
}

func (r *stubAircraftRepo) CountByOwner(_ context.Context, limit int) ([]ports.FleetCount, error) {
	counts := make(map[string]int)
	for _, a := range r.byID {
		counts[a.OwnerID]++
	}
	out := make([]ports.FleetCount, 0, len(counts))
	for owner, n := range counts {
		out = append(out, ports.FleetCount{OwnerID: owner, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubTransactionRepo struct {
	appended []*domain.Transaction
}

func (r *stubTransactionRepo) Append(_ context.Context, tx *domain.Transaction) error {
	clone := *tx
	clone.ID = fmt.Sprintf("tx-%d", len(r.appended)+1)
	r.appended = append(r.appended, &clone)
	return nil
}

func (r *stubTransactionRepo) FindRecentByUser(_ context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for i := len(r.appended) - 1; i >= 0 && len(out) < limit; i-- {
		tx := r.appended[i]
		if tx.FromUserID == userID || tx.ToUserID == userID {
			clone := *tx
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) ofType(t domain.TransactionType) []*domain.Transaction {
	var out []*domain.Transaction
	for _, tx := range r.appended {
		if tx.Type == t {
			out = append(out, tx)
		}
	}
	return out
}

type stubSettingRepo struct {
	byKey map[string]*domain.Setting
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{byKey: make(map[string]*domain.Setting)}
}

func (r *stubSettingRepo) Find(_ context.Context, key string) (*domain.Setting, error) {
	s, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrSettingNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSettingRepo) FindAll(_ context.Context) ([]*domain.Setting, error) {
	out := make([]*domain.Setting, 0, len(r.byKey))
	for _, s := range r.byKey {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSettingRepo) Upsert(_ context.Context, setting *domain.Setting) error {
	clone := *setting
	r.byKey[setting.Key] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Unit of work and lock stubs
// ---------------------------------------------------------------------------

// passthroughUOW runs the callback directly; the stub repositories have no
// transaction concept.
type passthroughUOW struct {
	execErr error // if set, Execute fails without running fn
	calls   int
}

func (u *passthroughUOW) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.execErr != nil {
		return u.execErr
	}
	u.calls++
	return fn(ctx)
}

type stubLocker struct {
	busy    bool  // TryLock reports the lease as held elsewhere
	lockErr error // TryLock fails outright
	locked  []string
}

func (l *stubLocker) TryLock(_ context.Context, airportID string, _ time.Duration) (bool, error) {
	if l.lockErr != nil {
		return false, l.lockErr
	}
	if l.busy {
		return false, nil
	}
	l.locked = append(l.locked, airportID)
	return true, nil
}

func (l *stubLocker) Unlock(_ context.Context, airportID string) error {
	return nil
}

// ---------------------------------------------------------------------------
// Seed helpers
// ---------------------------------------------------------------------------

type world struct {
	users        *stubUserRepo
	profiles     *stubProfileRepo
	airports     *stubAirportRepo
	aircraft     *stubAircraftRepo
	transactions *stubTransactionRepo
	uow          *passthroughUOW
	locker       *stubLocker
}

func newWorld() *world {
	return &world{
		users:        newStubUserRepo(),
		profiles:     newStubProfileRepo(),
		airports:     newStubAirportRepo(),
		aircraft:     newStubAircraftRepo(),
		transactions: &stubTransactionRepo{},
		uow:          &passthroughUOW{},
		locker:       &stubLocker{},
	}
}

// seedPlayer creates a user with a funded profile and a default airport,
// returning the user id and the airport id.
func (w *world) seedPlayer(username string, balance float64) (string, string) {
	user, _ := w.users.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     domain.RoleUser,
		Status:   domain.UserStatusActive,
	})
	profile, _ := w.profiles.Create(context.Background(), &domain.GameProfile{
		UserID:  user.ID,
		Balance: balance,
		Level:   1,
	})
	_ = w.users.SetGameProfile(context.Background(), user.ID, profile.ID)

	airport, _ := w.airports.Create(context.Background(), &domain.Airport{
		OwnerID: user.ID,
		Name:    username + "'s Airport",
		Level:   1,
		Runways: []domain.Runway{{Type: "small", Length: 2000}},
		ParkingSpots: []domain.ParkingSpot{
			{Type: domain.SpotStandard, Fee: 100},
			{Type: domain.SpotStandard, Fee: 100},
			{Type: domain.SpotPremium, Fee: 200},
		},
		Facilities: []domain.Facility{
			{Type: domain.FacilityTerminal, Level: 1, Capacity: 200},
		},
		Location: domain.Location{X: 0, Y: 0},
	})
	return user.ID, airport.ID
}

// seedParkedAircraft places a parked aircraft at the given airport.
func (w *world) seedParkedAircraft(ownerID, airportID, model string) *domain.Aircraft {
	spec := domain.Catalog[model]
	a, _ := w.aircraft.Create(context.Background(), &domain.Aircraft{
		OwnerID:         ownerID,
		Model:           model,
		Name:            model + "-test",
		PurchasePrice:   spec.Price,
		Capacity:        spec.Capacity,
		MaintenanceCost: spec.MaintenanceCost,
		Condition:       100,
		CurrentLocation: airportID,
		Status:          domain.StatusParked,
	})
	return a
}
