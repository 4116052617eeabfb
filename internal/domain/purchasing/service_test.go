package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
)

type memState struct {
	purchases map[id.ID]*Purchase
	lots      map[id.ID]*ledger.Lot
}

func (m *memState) snapshot() *memState {
	cp := &memState{
		purchases: make(map[id.ID]*Purchase, len(m.purchases)),
		lots:      make(map[id.ID]*ledger.Lot, len(m.lots)),
	}
	for k, v := range m.purchases {
		p := *v
		cp.purchases[k] = &p
	}
	for k, v := range m.lots {
		l := *v
		cp.lots[k] = &l
	}
	return cp
}

type fakeTxManager struct {
	state *memState
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := f.state.snapshot()
	if err := fn(ctx); err != nil {
		f.state.purchases = snap.purchases
		f.state.lots = snap.lots
		return err
	}
	return nil
}

type fakePurchaseRepo struct {
	state *memState
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *Purchase) error {
	cp := *p
	f.state.purchases[p.ID] = &cp
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, purchaseID id.ID) (*Purchase, error) {
	p, ok := f.state.purchases[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", purchaseID)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchaseRepo) ListByInvoice(_ context.Context, invoiceNumber string) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range f.state.purchases {
		if p.InvoiceNumber == invoiceNumber {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePurchaseRepo) List(_ context.Context, _, _ int) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range f.state.purchases {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeLots struct {
	state   *memState
	failOn  int // 1-based call index that returns an error, 0 disables
	calls   int
	lastErr error
}

func (f *fakeLots) AddLot(_ context.Context, n *ledger.NewLot) (*ledger.Lot, error) {
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		f.lastErr = apperror.NewStoreUnavailable(nil)
		return nil, f.lastErr
	}
	lot := &ledger.Lot{
		ID:                id.New(),
		ArticleID:         n.ArticleID,
		ProviderID:        n.ProviderID,
		ProviderName:      n.ProviderName,
		InvoiceNumber:     n.InvoiceNumber,
		InvoiceDate:       n.InvoiceDate,
		InitialQuantity:   n.Quantity,
		RemainingQuantity: n.Quantity,
		UnitCost:          n.UnitCost,
		SocietyID:         n.SocietyID,
		PurchaseID:        n.PurchaseID,
		LotNumber:         n.LotNumber,
		CreatedAt:         time.Now().UTC(),
	}
	f.state.lots[lot.ID] = lot
	return lot, nil
}

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

type fakeProviders struct {
	byID map[id.ID]*provider.Provider
}

func (f *fakeProviders) GetByID(_ context.Context, providerID id.ID) (*provider.Provider, error) {
	p, ok := f.byID[providerID]
	if !ok {
		return nil, apperror.NewNotFound("provider", providerID)
	}
	return p, nil
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
	return f.def, nil
}

type fixture struct {
	svc   *Service
	state *memState
	lots  *fakeLots

	art  *article.Article
	prov *provider.Provider
	soc  *society.Society
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state := &memState{
		purchases: make(map[id.ID]*Purchase),
		lots:      make(map[id.ID]*ledger.Lot),
	}
	art := article.New("CERV001", "Lager 33cl", 12)
	prov := provider.New("PROV001", "Quilmes Brewery")
	soc := &society.Society{ID: id.New(), Code: "SOC001", Name: "Main", IsDefault: true}
	lots := &fakeLots{state: state}

	svc := NewService(
		&fakeTxManager{state: state},
		&fakePurchaseRepo{state: state},
		&fakeArticles{byID: map[id.ID]*article.Article{art.ID: art}},
		&fakeProviders{byID: map[id.ID]*provider.Provider{prov.ID: prov}},
		&fakeSocieties{def: soc},
		lots,
	)
	return &fixture{svc: svc, state: state, lots: lots, art: art, prov: prov, soc: soc}
}

func TestRecordBatch_CreatesPurchaseAndLotPerEntry(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	providerID := fx.prov.ID

	res, err := fx.svc.RecordBatch(ctx, &BatchInput{
		Invoice: Invoice{
			Number:      "FAC-100",
			InvoiceDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ReceiptDate: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		},
		Entries: []Entry{
			{
				ArticleID:     fx.art.ID,
				ProviderID:    &providerID,
				Quantity:      types.NewQuantityFromInt(100),
				NetAmount:     types.NewMoney(180.00),
				ShippingCost:  types.NewMoney(10.00),
				InternalTaxes: types.NewMoney(6.00),
				VATPerception: types.NewMoney(4.00),
			},
			{
				ArticleID: fx.art.ID,
				Quantity:  types.NewQuantityFromInt(50),
				NetAmount: types.NewMoney(100.00),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Recorded)
	require.Len(t, res.Purchases, 2)
	require.Len(t, res.Lots, 2)
	assert.Len(t, fx.state.purchases, 2)
	assert.Len(t, fx.state.lots, 2)

	first, err := fx.svc.GetByID(ctx, res.Purchases[0])
	require.NoError(t, err)
	// 180 + 6 taxed, + 10 shipping + 4 perception = 200 over 100 units
	assert.Equal(t, "186.00", types.FormatMoney(first.SubTotal))
	assert.Equal(t, "200.00", types.FormatMoney(first.TotalCost))
	assert.Equal(t, "2.00", types.FormatMoney(first.UnitCost))
	assert.Equal(t, fx.soc.ID, first.SocietyID)

	lot := fx.state.lots[res.Lots[0]]
	require.NotNil(t, lot)
	assert.Equal(t, types.NewQuantityFromInt(100), lot.InitialQuantity)
	assert.Equal(t, lot.InitialQuantity, lot.RemainingQuantity)
	assert.Equal(t, "2.00", types.FormatMoney(lot.UnitCost))
	assert.Equal(t, "FAC-100", lot.InvoiceNumber)
	assert.Equal(t, "LOT-FAC-100-1", lot.LotNumber)
	assert.Equal(t, "Quilmes Brewery", lot.ProviderName)
	require.NotNil(t, lot.PurchaseID)
	assert.Equal(t, first.ID, *lot.PurchaseID)
}

func TestRecordBatch_SecondEntryFailureAbortsBatch(t *testing.T) {
	fx := newFixture(t)
	fx.lots.failOn = 2

	_, err := fx.svc.RecordBatch(context.Background(), &BatchInput{
		Invoice: Invoice{Number: "FAC-200", InvoiceDate: time.Now()},
		Entries: []Entry{
			{ArticleID: fx.art.ID, Quantity: types.NewQuantityFromInt(10), NetAmount: types.NewMoney(20)},
			{ArticleID: fx.art.ID, Quantity: types.NewQuantityFromInt(10), NetAmount: types.NewMoney(20)},
		},
	})
	require.Error(t, err)

	assert.Empty(t, fx.state.purchases)
	assert.Empty(t, fx.state.lots)
}

func TestRecordBatch_UnknownArticle(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.RecordBatch(context.Background(), &BatchInput{
		Invoice: Invoice{Number: "FAC-300", InvoiceDate: time.Now()},
		Entries: []Entry{
			{ArticleID: id.New(), Quantity: types.NewQuantityFromInt(10), NetAmount: types.NewMoney(20)},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, fx.state.purchases)
}

func TestRecordBatch_Validation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.RecordBatch(ctx, &BatchInput{
		Invoice: Invoice{Number: "FAC-400"},
	})
	require.Error(t, err)

	_, err = fx.svc.RecordBatch(ctx, &BatchInput{
		Invoice: Invoice{},
		Entries: []Entry{
			{ArticleID: fx.art.ID, Quantity: types.NewQuantityFromInt(1), NetAmount: types.NewMoney(1)},
		},
	})
	require.Error(t, err)

	_, err = fx.svc.RecordBatch(ctx, &BatchInput{
		Invoice: Invoice{Number: "FAC-500"},
		Entries: []Entry{
			{ArticleID: fx.art.ID, Quantity: types.NewQuantityFromInt(0), NetAmount: types.NewMoney(1)},
		},
	})
	require.Error(t, err)
}
