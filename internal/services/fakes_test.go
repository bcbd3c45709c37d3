package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/GaganMittal847/Companio/internal/events"
	"github.com/GaganMittal847/Companio/internal/logger"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var nopLogger = logger.Nop()

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fixedClock { return &fixedClock{t: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// users

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	sellers []models.SellerResult
	lastQ   repository.SellerQuery
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.MobileNo == u.MobileNo && existing.Type == u.Type {
			return repository.ErrDuplicate
		}
	}
	u.ObjectID = primitive.NewObjectID()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByMobile(_ context.Context, mobile string, typ models.UserType) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.MobileNo == mobile && (typ == "" || u.Type == typ) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Age, u.Gender, u.Bio, u.ProfilePic = p.Age, p.Gender, p.Bio, p.ProfilePic
	if p.GeoLocation != nil {
		u.GeoLocation = p.GeoLocation
	}
	if p.CatList != nil {
		u.CatList = p.CatList
	}
	if p.SubCatList != nil {
		u.SubCatList = p.SubCatList
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) AcquireLock(_ context.Context, id string, now, until time.Time) (models.LockState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.LockState{}, repository.ErrNotFound
	}
	if u.LockActive(now) {
		return models.LockState{}, repository.ErrConflict
	}
	prev := u.Lock()
	at, un := now, until
	u.IsLocked, u.LockedAt, u.LockedUntil = true, &at, &un
	return prev, nil
}

func (f *fakeUsers) RestoreLock(ctx context.Context, id string, prev models.LockState) error {
	// The driver refuses work on a done context.
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsLocked, u.LockedAt, u.LockedUntil = prev.IsLocked, prev.LockedAt, prev.LockedUntil
	return nil
}

func (f *fakeUsers) ReleaseExpiredLocks(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.byID {
		if u.IsLocked && u.LockedUntil != nil && !u.LockedUntil.After(now) {
			u.IsLocked = false
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) SearchSellers(_ context.Context, q repository.SellerQuery) ([]models.SellerResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQ = q
	return f.sellers, nil
}

// counters

type fakeCounters struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newFakeCounters() *fakeCounters { return &fakeCounters{seqs: map[string]int64{}} }

func (f *fakeCounters) Next(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seqs[name]++
	return f.seqs[name], nil
}

// otp

type fakeOTPs struct {
	mu   sync.Mutex
	recs map[string]*models.LoginRecord
}

func newFakeOTPs() *fakeOTPs { return &fakeOTPs{recs: map[string]*models.LoginRecord{}} }

func (f *fakeOTPs) Issue(_ context.Context, mobile string, role models.UserType, code string, issuedAtMs int64) (*models.LoginRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[mobile]
	if !ok {
		rec = &models.LoginRecord{MobileNo: mobile}
		f.recs[mobile] = rec
	}
	c := code
	rec.Role, rec.OTP, rec.Timestamp, rec.OTPVerified = role, &c, issuedAtMs, false
	rec.OTPCount++
	cp := *rec
	return &cp, nil
}

func (f *fakeOTPs) Find(_ context.Context, mobile string) (*models.LoginRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[mobile]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeOTPs) MarkVerified(_ context.Context, mobile, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[mobile]
	if !ok || rec.OTP == nil || *rec.OTP != code {
		return repository.ErrConflict
	}
	rec.OTP, rec.OTPVerified = nil, true
	return nil
}

// catalog

type fakeCategories struct {
	mu   sync.Mutex
	byID map[string]models.Category
	list int
}

func newFakeCategories(cids ...string) *fakeCategories {
	f := &fakeCategories{byID: map[string]models.Category{}}
	for _, cid := range cids {
		f.byID[cid] = models.Category{CID: cid, Name: cid}
	}
	return f
}

func (f *fakeCategories) Create(_ context.Context, c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[c.CID]; ok {
		return repository.ErrDuplicate
	}
	f.byID[c.CID] = *c
	return nil
}

func (f *fakeCategories) FindByCID(_ context.Context, cid string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[cid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategories) List(_ context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list++
	out := []models.Category{}
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CID < out[j].CID })
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, cid string, name, pic *string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[cid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if pic != nil {
		c.CPic = *pic
	}
	f.byID[cid] = c
	return &c, nil
}

func (f *fakeCategories) Delete(_ context.Context, cid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[cid]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, cid)
	return nil
}

type fakeSubcategories struct {
	mu   sync.Mutex
	byID map[string]models.Subcategory
}

func newFakeSubcategories(subs ...models.Subcategory) *fakeSubcategories {
	f := &fakeSubcategories{byID: map[string]models.Subcategory{}}
	for _, s := range subs {
		f.byID[s.SCID] = s
	}
	return f
}

func (f *fakeSubcategories) Create(_ context.Context, s *models.Subcategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[s.SCID]; ok {
		return repository.ErrDuplicate
	}
	f.byID[s.SCID] = *s
	return nil
}

func (f *fakeSubcategories) FindBySCID(_ context.Context, scid string) (*models.Subcategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[scid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSubcategories) List(_ context.Context, categoryID string) ([]models.Subcategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Subcategory{}
	for _, s := range f.byID {
		if categoryID == "" || s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SCID < out[j].SCID })
	return out, nil
}

func (f *fakeSubcategories) Update(_ context.Context, scid string, u repository.SubcategoryUpdate) (*models.Subcategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[scid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.SCPic != nil {
		s.SCPic = *u.SCPic
	}
	if u.CategoryID != nil {
		s.CategoryID = *u.CategoryID
	}
	f.byID[scid] = s
	return &s, nil
}

func (f *fakeSubcategories) Delete(_ context.Context, scid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[scid]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, scid)
	return nil
}

type fakeBanners struct{ items []models.Banner }

func (f *fakeBanners) List(context.Context) ([]models.Banner, error) { return f.items, nil }
func (f *fakeBanners) Upsert(_ context.Context, b *models.Banner) error {
	f.items = append(f.items, *b)
	return nil
}

// calendar

type fakeCalendars struct {
	mu   sync.Mutex
	byID map[string]*models.Calendar
}

func newFakeCalendars() *fakeCalendars { return &fakeCalendars{byID: map[string]*models.Calendar{}} }

func (f *fakeCalendars) FindBySeller(_ context.Context, sellerID string) (*models.Calendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[sellerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	cp.Categories = append([]models.CalendarEntry(nil), c.Categories...)
	return &cp, nil
}

func (f *fakeCalendars) UpsertEntry(ctx context.Context, sellerID, name string, e models.CalendarEntry) (*models.Calendar, error) {
	f.mu.Lock()
	c, ok := f.byID[sellerID]
	if !ok {
		c = &models.Calendar{SellerID: sellerID}
		f.byID[sellerID] = c
	}
	c.Name = name
	replaced := false
	for i, existing := range c.Categories {
		if existing.CategoryID == e.CategoryID && existing.SubCategoryID == e.SubCategoryID {
			c.Categories[i] = e
			replaced = true
		}
	}
	if !replaced {
		c.Categories = append(c.Categories, e)
	}
	f.mu.Unlock()
	return f.FindBySeller(ctx, sellerID)
}

// bookings

type fakeBookings struct {
	mu            sync.Mutex
	byID          map[string]*models.BookingRequest
	transitionErr error
	// cancelOnTransition simulates the request deadline firing mid write.
	cancelOnTransition context.CancelFunc
	lastFilter         models.BookingFilter
}

func newFakeBookings() *fakeBookings { return &fakeBookings{byID: map[string]*models.BookingRequest{}} }

func (f *fakeBookings) Create(_ context.Context, b *models.BookingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	cp := *b
	f.byID[b.ID.Hex()] = &cp
	return nil
}

func (f *fakeBookings) FindByID(_ context.Context, id string) (*models.BookingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) Transition(ctx context.Context, id string, from []models.RequestStatus, to models.RequestStatus, payment models.PaymentStatus) (*models.BookingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelOnTransition != nil {
		f.cancelOnTransition()
		return nil, ctx.Err()
	}
	if f.transitionErr != nil {
		return nil, f.transitionErr
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if b.RequestStatus == s {
			allowed = true
		}
	}
	if !allowed {
		return nil, repository.ErrConflict
	}
	b.RequestStatus = to
	if payment != "" {
		b.PaymentStatus = payment
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) Find(_ context.Context, flt models.BookingFilter) ([]models.BookingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = flt
	out := []models.BookingRequest{}
	for _, b := range f.byID {
		if flt.UserID != "" && b.UserID != flt.UserID {
			continue
		}
		if flt.CompanionID != "" && b.CompanionID != flt.CompanionID {
			continue
		}
		if flt.Status != "" && b.RequestStatus != flt.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

// chat

type fakeMessages struct {
	mu   sync.Mutex
	byID map[string]*models.Message
}

func newFakeMessages() *fakeMessages { return &fakeMessages{byID: map[string]*models.Message{}} }

func (f *fakeMessages) Create(_ context.Context, m *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = primitive.NewObjectID()
	cp := *m
	f.byID[m.ID.Hex()] = &cp
	return nil
}

func (f *fakeMessages) ListByRequest(_ context.Context, requestID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Message{}
	for _, m := range f.byID {
		if m.RequestID == requestID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CDt.Before(out[j].CDt) })
	return out, nil
}

func (f *fakeMessages) Update(_ context.Context, id string, u repository.MessageUpdate) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	m, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Msg != nil {
		m.Msg = *u.Msg
	}
	if u.URL != nil {
		m.URL = *u.URL
	}
	m.CDt = u.At
	cp := *m
	return &cp, nil
}

func (f *fakeMessages) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeChatLists struct {
	mu    sync.Mutex
	byReq map[string]*models.ChatList
}

func newFakeChatLists() *fakeChatLists { return &fakeChatLists{byReq: map[string]*models.ChatList{}} }

func (f *fakeChatLists) Create(_ context.Context, c *models.ChatList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byReq[c.RequestID]; ok {
		return repository.ErrDuplicate
	}
	cp := *c
	f.byReq[c.RequestID] = &cp
	return nil
}

func (f *fakeChatLists) Touch(_ context.Context, requestID string, sender models.ChatParticipant, msg string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byReq[requestID]
	if !ok {
		c = &models.ChatList{RequestID: requestID, CDt: at}
		f.byReq[requestID] = c
	}
	t := at
	c.LatestMsg, c.LatestMsgTime = msg, &t
	for _, u := range c.Users {
		if u.ID == sender.ID {
			return nil
		}
	}
	c.Users = append(c.Users, sender)
	return nil
}

func (f *fakeChatLists) ListByParticipant(_ context.Context, userID string) ([]models.ChatList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ChatList{}
	for _, c := range f.byReq {
		for _, u := range c.Users {
			if u.ID == userID {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

// addresses

type fakeAddresses struct {
	mu    sync.Mutex
	items []models.Address
}

func (f *fakeAddresses) Create(_ context.Context, a *models.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = primitive.NewObjectID()
	f.items = append(f.items, *a)
	return nil
}

func (f *fakeAddresses) ListByUser(_ context.Context, userID string) ([]models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Address{}
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// cache

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	counts  map[string]int64
	decrErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, counts: map[string]int64{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memCache) Decr(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.decrErr != nil {
		return c.decrErr
	}
	c.counts[key]--
	return nil
}

// events

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// recordingSender captures SMS bodies.
type recordingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *recordingSender) Send(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to+":"+body)
	return s.err
}
