package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/codec"
	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/export"
	"github.com/ycetindil/attrio/internal/history"
	"github.com/ycetindil/attrio/internal/repository"
)

type fakeAttrRepo struct {
	attrs map[uuid.UUID]domain.Attribute
}

func (r *fakeAttrRepo) Create(_ context.Context, attr domain.Attribute) (domain.Attribute, error) {
	r.attrs[attr.ID] = attr
	return attr, nil
}

func (r *fakeAttrRepo) Update(_ context.Context, attr domain.Attribute) (domain.Attribute, error) {
	if _, ok := r.attrs[attr.ID]; !ok {
		return domain.Attribute{}, repository.ErrNotFound
	}
	r.attrs[attr.ID] = attr
	return attr, nil
}

func (r *fakeAttrRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.attrs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.attrs, id)
	return nil
}

func (r *fakeAttrRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Attribute, error) {
	attr, ok := r.attrs[id]
	if !ok {
		return domain.Attribute{}, repository.ErrNotFound
	}
	return attr, nil
}

func (r *fakeAttrRepo) GetByKey(_ context.Context, key string) (domain.Attribute, error) {
	for _, attr := range r.attrs {
		if attr.Key == key {
			return attr, nil
		}
	}
	return domain.Attribute{}, repository.ErrNotFound
}

func (r *fakeAttrRepo) List(_ context.Context) ([]domain.Attribute, error) {
	out := make([]domain.Attribute, 0, len(r.attrs))
	for _, attr := range r.attrs {
		out = append(out, attr)
	}
	return out, nil
}

type fakeGroupRepo struct{}

func (fakeGroupRepo) Create(_ context.Context, g domain.AttributeGroup) (domain.AttributeGroup, error) {
	return g, nil
}
func (fakeGroupRepo) Update(_ context.Context, _ domain.AttributeGroup) (domain.AttributeGroup, error) {
	return domain.AttributeGroup{}, repository.ErrNotFound
}
func (fakeGroupRepo) Delete(_ context.Context, _ uuid.UUID) error { return repository.ErrNotFound }
func (fakeGroupRepo) GetByID(_ context.Context, _ uuid.UUID) (domain.AttributeGroup, error) {
	return domain.AttributeGroup{}, repository.ErrNotFound
}
func (fakeGroupRepo) List(_ context.Context) ([]domain.AttributeGroup, error) { return nil, nil }

type fakeItemRepo struct {
	items map[uuid.UUID]domain.Item
}

func (r *fakeItemRepo) Create(_ context.Context, item domain.Item) (domain.Item, error) {
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item domain.Item) (domain.Item, error) {
	if _, ok := r.items[item.ID]; !ok {
		return domain.Item{}, repository.ErrNotFound
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, repository.ErrNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

type fakeHistRepo struct {
	entries []domain.HistoryEntry
}

func (r *fakeHistRepo) Insert(_ context.Context, entry domain.HistoryEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistRepo) List(_ context.Context, query domain.HistoryQuery) ([]domain.HistoryEntry, int, error) {
	var matched []domain.HistoryEntry
	for _, entry := range r.entries {
		if entry.EntityType == query.EntityType && entry.EntityID == query.EntityID {
			matched = append(matched, entry)
		}
	}
	return matched, len(matched), nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeHistRepo) {
	t.Helper()
	logger := zap.NewNop()
	histRepo := &fakeHistRepo{}
	histSvc := history.NewService(histRepo, history.CacheConfig{}, logger)
	cdc := codec.New(codec.DefaultConfig())
	catalogSvc := catalog.NewService(
		&fakeAttrRepo{attrs: map[uuid.UUID]domain.Attribute{}},
		fakeGroupRepo{},
		&fakeItemRepo{items: map[uuid.UUID]domain.Item{}},
		histSvc, cdc, logger,
	)
	importer := catalog.NewImporter(catalogSvc, histSvc, logger)
	exporter := export.NewService(catalogSvc, histSvc, logger)
	handler := NewHandler(catalogSvc, histSvc, exporter, importer, logger)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server, histRepo
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestCreateAttributeEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/attributes", `{
		"key": "color",
		"name": "Color",
		"type": "SELECT",
		"options": ["Red", "Blue"],
		"default": "Red"
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created domain.Attribute
	decodeData(t, resp, &created)
	if created.Key != "color" || created.Type != domain.AttributeTypeSelect {
		t.Fatalf("unexpected attribute: %+v", created)
	}
}

func TestCreateAttributeEndpointRejectsBadDefault(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/attributes", `{
		"key": "color",
		"name": "Color",
		"type": "SELECT",
		"options": ["Red"],
		"default": "Green"
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Message == "" {
		t.Fatalf("error envelope must carry a message")
	}
}

func TestGetAttributeNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/attributes/" + uuid.NewString())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHistoryEndpointEnvelope(t *testing.T) {
	server, _ := newTestServer(t)

	// Create an attribute so the audit trail has an entry to page over.
	resp := postJSON(t, server.URL+"/api/attributes", `{
		"key": "sku", "name": "SKU", "type": "TEXT"
	}`)
	var created domain.Attribute
	decodeData(t, resp, &created)

	resp, err := http.Get(server.URL + "/api/history?entityType=attribute&entityId=" + created.ID.String() + "&page=1&pageSize=10")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var page domain.HistoryPage
	decodeData(t, resp, &page)
	if len(page.Items) != 1 {
		t.Fatalf("expected one history entry, got %d", len(page.Items))
	}
	if page.Pagination.Page != 1 || page.Pagination.PageSize != 10 || page.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	if page.Items[0].Action != domain.ActionCreated {
		t.Fatalf("unexpected entry: %+v", page.Items[0])
	}
}

func TestDiffEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/history/diff", `{
		"base":   {"EntityType": "item", "EntityID": "1", "Values": {"name": "Old"}},
		"target": {"EntityType": "item", "EntityID": "1", "Values": {"name": "New"}}
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Diff string `json:"diff"`
	}
	decodeData(t, resp, &out)
	if !strings.Contains(out.Diff, `-  name: "Old"`) || !strings.Contains(out.Diff, `+  name: "New"`) {
		t.Fatalf("unexpected diff:\n%s", out.Diff)
	}
}

func TestImportEndpointRejectsMissingFile(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/items/import", "multipart/form-data; boundary=x", strings.NewReader("--x--\r\n"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestExportHistoryCSVRequiresEntity(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/export/history.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestItemFormEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/attributes", `{
		"key": "color",
		"name": "Color",
		"type": "SELECT",
		"options": ["Red", "Blue"]
	}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create attribute: %d", resp.StatusCode)
	}

	resp = postJSON(t, server.URL+"/api/items", `{
		"name": "Widget",
		"values": {"color": "Red"}
	}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: %d", resp.StatusCode)
	}
	var item domain.Item
	decodeData(t, resp, &item)

	resp, err := http.Get(server.URL + "/api/items/" + item.ID.String() + "/form?mode=edit")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var descriptors []codec.FieldDescriptor
	decodeData(t, resp, &descriptors)
	if len(descriptors) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(descriptors))
	}
	desc := descriptors[0]
	if desc.Key != "color" || desc.Control != codec.ControlSelect || desc.Mode != codec.ModeEdit {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}
	if desc.Display != "Red" {
		t.Fatalf("expected bound display value, got %q", desc.Display)
	}

	resp, err = http.Get(server.URL + "/api/items/" + item.ID.String() + "/form?mode=edit&readonly=true")
	if err != nil {
		t.Fatalf("get readonly form: %v", err)
	}
	decodeData(t, resp, &descriptors)
	if descriptors[0].Mode != codec.ModeView {
		t.Fatalf("readonly must force view mode, got %q", descriptors[0].Mode)
	}
}
