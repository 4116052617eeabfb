package sales

import (
	"context"
	"sort"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
)

// memStore is a shared in-memory state for the fakes. The fake tx
// manager snapshots it before running a unit of work and restores the
// snapshot on error, mirroring the rollback contract of the real one.
type memStore struct {
	sales map[id.ID]*Sale
	lines map[id.ID][]*Line // keyed by sale ID
	lots  map[id.ID]*ledger.Lot
	seq   int
}

func newMemStore() *memStore {
	return &memStore{
		sales: make(map[id.ID]*Sale),
		lines: make(map[id.ID][]*Line),
		lots:  make(map[id.ID]*ledger.Lot),
	}
}

func (m *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.seq = m.seq
	for k, v := range m.sales {
		s := *v
		cp.sales[k] = &s
	}
	for k, v := range m.lines {
		ls := make([]*Line, len(v))
		for i, l := range v {
			c := *l
			ls[i] = &c
		}
		cp.lines[k] = ls
	}
	for k, v := range m.lots {
		l := *v
		cp.lots[k] = &l
	}
	return cp
}

func (m *memStore) restore(snap *memStore) {
	m.sales = snap.sales
	m.lines = snap.lines
	m.lots = snap.lots
	m.seq = snap.seq
}

// fakeTxManager provides the all-or-nothing contract over memStore.
type fakeTxManager struct {
	store *memStore
	depth int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.depth > 0 {
		// nested call joins the outer unit of work
		return fn(ctx)
	}
	snap := f.store.snapshot()
	f.depth++
	err := fn(ctx)
	f.depth--
	if err != nil {
		f.store.restore(snap)
	}
	return err
}

// fakeSaleRepo implements Repository over memStore.
type fakeSaleRepo struct {
	store *memStore
}

func (f *fakeSaleRepo) InsertSale(_ context.Context, sale *Sale) error {
	cp := *sale
	f.store.sales[sale.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) UpdateSale(_ context.Context, sale *Sale) error {
	if _, ok := f.store.sales[sale.ID]; !ok {
		return apperror.NewNotFound("sale", sale.ID)
	}
	cp := *sale
	f.store.sales[sale.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) GetSale(_ context.Context, saleID id.ID) (*Sale, error) {
	sale, ok := f.store.sales[saleID]
	if !ok {
		return nil, apperror.NewNotFound("sale", saleID)
	}
	cp := *sale
	return &cp, nil
}

func (f *fakeSaleRepo) ListSales(_ context.Context, filter ListFilter) ([]*Sale, error) {
	var out []*Sale
	for _, sale := range f.store.sales {
		if filter.ClientID != nil && sale.ClientID != *filter.ClientID {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.Before(out[j].SaleDate) })
	return out, nil
}

func (f *fakeSaleRepo) InsertLines(_ context.Context, lines []*Line) error {
	for _, line := range lines {
		cp := *line
		f.store.lines[line.SaleID] = append(f.store.lines[line.SaleID], &cp)
	}
	return nil
}

func (f *fakeSaleRepo) DeleteLines(_ context.Context, saleID id.ID) error {
	delete(f.store.lines, saleID)
	return nil
}

func (f *fakeSaleRepo) ListLines(_ context.Context, saleID id.ID) ([]*Line, error) {
	lines := f.store.lines[saleID]
	out := make([]*Line, len(lines))
	for i, l := range lines {
		cp := *l
		out[i] = &cp
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, nil
}

// fakeLotRepo implements ledger.Repository over memStore.
type fakeLotRepo struct {
	store *memStore
}

func (f *fakeLotRepo) Create(_ context.Context, lot *ledger.Lot) error {
	cp := *lot
	f.store.seq++
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(f.store.seq) * time.Microsecond)
	f.store.lots[lot.ID] = &cp
	return nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, lotID id.ID) (*ledger.Lot, error) {
	lot, ok := f.store.lots[lotID]
	if !ok {
		return nil, apperror.NewNotFound("lot", lotID)
	}
	cp := *lot
	return &cp, nil
}

func (f *fakeLotRepo) fifo(articleID id.ID, onlyAvailable bool) []*ledger.Lot {
	var out []*ledger.Lot
	for _, lot := range f.store.lots {
		if lot.ArticleID != articleID {
			continue
		}
		if onlyAvailable && !lot.RemainingQuantity.IsPositive() {
			continue
		}
		out = append(out, lot)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].InvoiceDate.Before(out[j].InvoiceDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (f *fakeLotRepo) ListAvailableForUpdate(_ context.Context, articleID id.ID) ([]*ledger.Lot, error) {
	return f.fifo(articleID, true), nil
}

func (f *fakeLotRepo) ListByArticle(_ context.Context, articleID id.ID, onlyAvailable bool) ([]*ledger.Lot, error) {
	return f.fifo(articleID, onlyAvailable), nil
}

func (f *fakeLotRepo) AdjustRemaining(_ context.Context, lotID id.ID, delta types.Quantity) error {
	lot, ok := f.store.lots[lotID]
	if !ok {
		return apperror.NewNotFound("lot", lotID)
	}
	lot.RemainingQuantity += delta
	return nil
}

func (f *fakeLotRepo) AvailableUnits(_ context.Context, articleID id.ID) (types.Quantity, error) {
	var total types.Quantity
	for _, lot := range f.fifo(articleID, true) {
		total += lot.RemainingQuantity
	}
	return total, nil
}

// fixed catalog resolvers

type fakeArticles struct {
	byID map[id.ID]*article.Article
}

func (f *fakeArticles) GetByID(_ context.Context, articleID id.ID) (*article.Article, error) {
	art, ok := f.byID[articleID]
	if !ok {
		return nil, apperror.NewNotFound("article", articleID)
	}
	return art, nil
}

type fakeClients struct {
	byID map[id.ID]*client.Client
}

func (f *fakeClients) GetByID(_ context.Context, clientID id.ID) (*client.Client, error) {
	c, ok := f.byID[clientID]
	if !ok {
		return nil, apperror.NewNotFound("client", clientID)
	}
	return c, nil
}

type fakeSocieties struct {
	def *society.Society
}

func (f *fakeSocieties) GetByID(_ context.Context, societyID id.ID) (*society.Society, error) {
	if f.def != nil && f.def.ID == societyID {
		return f.def, nil
	}
	return nil, apperror.NewNotFound("society", societyID)
}

func (f *fakeSocieties) GetDefault(_ context.Context) (*society.Society, error) {
	if f.def == nil {
		return nil, apperror.NewNotFound("society", "default")
	}
	return f.def, nil
}
