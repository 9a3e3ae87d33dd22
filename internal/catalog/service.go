package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/codec"
	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/history"
	"github.com/ycetindil/attrio/internal/metrics"
	"github.com/ycetindil/attrio/internal/repository"
)

// Audited entity type names.
const (
	EntityTypeAttribute      = "attribute"
	EntityTypeAttributeGroup = "attribute_group"
	EntityTypeItem           = "item"
)

// ErrUniqueViolation is returned when an item value collides on an attribute
// flagged unique.
var ErrUniqueViolation = errors.New("unique attribute value already in use")

// Service coordinates catalog mutations, value validation and audit
// recording.
type Service struct {
	attrs     repository.AttributeRepository
	groups    repository.AttributeGroupRepository
	items     repository.ItemRepository
	hist      *history.Service
	cdc       *codec.Codec
	validator valueValidator
	logger    *zap.Logger
}

// NewService wires the catalog service.
func NewService(
	attrs repository.AttributeRepository,
	groups repository.AttributeGroupRepository,
	items repository.ItemRepository,
	hist *history.Service,
	cdc *codec.Codec,
	logger *zap.Logger,
) *Service {
	return &Service{
		attrs:     attrs,
		groups:    groups,
		items:     items,
		hist:      hist,
		cdc:       cdc,
		validator: valueValidator{cdc: cdc},
		logger:    logger,
	}
}

// Codec exposes the service's codec for callers that format values.
func (s *Service) Codec() *codec.Codec {
	return s.cdc
}

// CreateAttribute finalizes a wizard draft: the draft must have completed
// every step, and its default value is normalized and validated against the
// draft's own type before anything is persisted.
func (s *Service) CreateAttribute(ctx context.Context, draft domain.AttributeDraft, actor *domain.Actor) (domain.Attribute, error) {
	if err := draft.Ready(); err != nil {
		return domain.Attribute{}, err
	}

	defaultValue, err := s.cdc.ValidateDefault(draft.RawDefault, draft.Type, draft.Options)
	if err != nil {
		metrics.ValidationFailures.WithLabelValues(string(draft.Type)).Inc()
		return domain.Attribute{}, fmt.Errorf("default value: %w", err)
	}

	attr := domain.NewAttribute(draft.Key, draft.Name, draft.Type).
		WithOptions(draft.Options).
		WithValidation(draft.Validation, draft.Required, draft.Unique).
		WithTags(draft.Tags)
	if defaultValue != nil {
		attr = attr.WithDefaultValue(s.cdc.Serialize(*defaultValue))
	}

	created, err := s.attrs.Create(ctx, attr)
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("create attribute %q: %w", attr.Key, err)
	}

	s.record(ctx, EntityTypeAttribute, created.ID.String(), domain.ActionCreated, actor, nil, created.Snapshot())
	return created, nil
}

// AttributeUpdate carries the edit flow's changed fields; nil means
// unchanged. Only changed fields are re-validated.
type AttributeUpdate struct {
	Name       *string
	GroupID    *uuid.UUID
	Options    *[]string
	Default    *string
	Validation *map[string]any
	Required   *bool
	Unique     *bool
	Tags       *[]string
}

// UpdateAttribute applies an edit, re-validating only what changed.
func (s *Service) UpdateAttribute(ctx context.Context, id uuid.UUID, update AttributeUpdate, actor *domain.Actor) (domain.Attribute, error) {
	current, err := s.attrs.GetByID(ctx, id)
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("load attribute: %w", err)
	}
	before := current.Snapshot()

	next := current
	if update.Name != nil {
		next = next.WithName(*update.Name)
	}
	if update.GroupID != nil {
		next = next.WithGroup(update.GroupID)
	}
	if update.Options != nil {
		next = next.WithOptions(*update.Options)
	}
	if update.Validation != nil || update.Required != nil || update.Unique != nil {
		rules := next.Validation
		if update.Validation != nil {
			rules = *update.Validation
		}
		required := next.Required
		if update.Required != nil {
			required = *update.Required
		}
		unique := next.Unique
		if update.Unique != nil {
			unique = *update.Unique
		}
		next = next.WithValidation(rules, required, unique)
	}
	if update.Tags != nil {
		next = next.WithTags(*update.Tags)
	}

	// A changed default, or changed options underneath an existing default,
	// goes back through full default validation.
	if update.Default != nil {
		validated, err := s.cdc.ValidateDefault(*update.Default, next.Type, next.Options)
		if err != nil {
			metrics.ValidationFailures.WithLabelValues(string(next.Type)).Inc()
			return domain.Attribute{}, fmt.Errorf("default value: %w", err)
		}
		if validated == nil {
			next = next.WithDefaultValue(nil)
		} else {
			next = next.WithDefaultValue(s.cdc.Serialize(*validated))
		}
	}

	updated, err := s.attrs.Update(ctx, next)
	if err != nil {
		return domain.Attribute{}, fmt.Errorf("update attribute %q: %w", next.Key, err)
	}

	s.record(ctx, EntityTypeAttribute, updated.ID.String(), domain.ActionUpdated, actor, before, updated.Snapshot())
	return updated, nil
}

// DeleteAttribute removes an attribute definition.
func (s *Service) DeleteAttribute(ctx context.Context, id uuid.UUID, actor *domain.Actor) error {
	current, err := s.attrs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load attribute: %w", err)
	}
	if err := s.attrs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete attribute: %w", err)
	}
	s.record(ctx, EntityTypeAttribute, id.String(), domain.ActionDeleted, actor, current.Snapshot(), nil)
	return nil
}

// GetAttribute loads one attribute definition.
func (s *Service) GetAttribute(ctx context.Context, id uuid.UUID) (domain.Attribute, error) {
	return s.attrs.GetByID(ctx, id)
}

// ListAttributes loads every attribute definition.
func (s *Service) ListAttributes(ctx context.Context) ([]domain.Attribute, error) {
	return s.attrs.List(ctx)
}

// CreateGroup creates an attribute group.
func (s *Service) CreateGroup(ctx context.Context, name, description string, tags []string, actor *domain.Actor) (domain.AttributeGroup, error) {
	group := domain.NewAttributeGroup(name, description)
	group.Tags = tags

	created, err := s.groups.Create(ctx, group)
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("create attribute group %q: %w", name, err)
	}
	s.record(ctx, EntityTypeAttributeGroup, created.ID.String(), domain.ActionCreated, actor, nil, created.Snapshot())
	return created, nil
}

// GroupUpdate carries an attribute group edit; nil means unchanged.
type GroupUpdate struct {
	Name        *string
	Description *string
}

// UpdateGroup applies a group edit.
func (s *Service) UpdateGroup(ctx context.Context, id uuid.UUID, update GroupUpdate, actor *domain.Actor) (domain.AttributeGroup, error) {
	current, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("load attribute group: %w", err)
	}
	before := current.Snapshot()

	next := current
	if update.Name != nil {
		next = next.WithName(*update.Name)
	}
	if update.Description != nil {
		next = next.WithDescription(*update.Description)
	}

	updated, err := s.groups.Update(ctx, next)
	if err != nil {
		return domain.AttributeGroup{}, fmt.Errorf("update attribute group: %w", err)
	}
	s.record(ctx, EntityTypeAttributeGroup, updated.ID.String(), domain.ActionUpdated, actor, before, updated.Snapshot())
	return updated, nil
}

// DeleteGroup removes an attribute group.
func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID, actor *domain.Actor) error {
	current, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load attribute group: %w", err)
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete attribute group: %w", err)
	}
	s.record(ctx, EntityTypeAttributeGroup, id.String(), domain.ActionDeleted, actor, current.Snapshot(), nil)
	return nil
}

// GetGroup loads one attribute group.
func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (domain.AttributeGroup, error) {
	return s.groups.GetByID(ctx, id)
}

// ListGroups loads every attribute group.
func (s *Service) ListGroups(ctx context.Context) ([]domain.AttributeGroup, error) {
	return s.groups.List(ctx)
}

// CreateItem validates and normalizes the value map against the attribute
// catalog, enforces unique attributes, persists the item and records its
// creation.
func (s *Service) CreateItem(ctx context.Context, name string, values map[string]any, actor *domain.Actor) (domain.Item, error) {
	normalized, err := s.normalizeItemValues(ctx, values, uuid.Nil)
	if err != nil {
		return domain.Item{}, err
	}

	item := domain.NewItem(name, normalized)
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("create item %q: %w", name, err)
	}
	s.record(ctx, EntityTypeItem, created.ID.String(), domain.ActionCreated, actor, nil, created.Snapshot())
	return created, nil
}

// ItemUpdate carries an item edit; nil means unchanged.
type ItemUpdate struct {
	Name   *string
	Values map[string]any
}

// UpdateItem applies an item edit, re-validating the value map when it
// changed.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, update ItemUpdate, actor *domain.Actor) (domain.Item, error) {
	current, err := s.items.GetByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("load item: %w", err)
	}
	before := current.Snapshot()

	next := current
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.Values != nil {
		normalized, err := s.normalizeItemValues(ctx, update.Values, id)
		if err != nil {
			return domain.Item{}, err
		}
		next = next.WithValues(normalized)
	}

	updated, err := s.items.Update(ctx, next)
	if err != nil {
		return domain.Item{}, fmt.Errorf("update item: %w", err)
	}
	s.record(ctx, EntityTypeItem, updated.ID.String(), domain.ActionUpdated, actor, before, updated.Snapshot())
	return updated, nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID, actor *domain.Actor) error {
	current, err := s.items.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.record(ctx, EntityTypeItem, id.String(), domain.ActionDeleted, actor, current.Snapshot(), nil)
	return nil
}

// GetItem loads one item.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

// ListItems loads every item.
func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

// DescribeItem renders one field descriptor per attribute for the item, in
// attribute listing order, with the item's current values bound.
func (s *Service) DescribeItem(ctx context.Context, id uuid.UUID, mode codec.Mode, readonly bool) ([]codec.FieldDescriptor, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	attrs, err := s.attrs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}

	descriptors := make([]codec.FieldDescriptor, 0, len(attrs))
	for _, attr := range attrs {
		value := s.cdc.Parse(attr.Type, item.Values[attr.Key])
		descriptors = append(descriptors, s.cdc.Describe(attr, value, mode, readonly))
	}
	return descriptors, nil
}

func (s *Service) normalizeItemValues(ctx context.Context, values map[string]any, excludeItem uuid.UUID) (map[string]any, error) {
	attrs, err := s.attributeIndex(ctx)
	if err != nil {
		return nil, err
	}

	normalized, valuesErr := s.validator.normalize(values, attrs)
	if valuesErr != nil {
		for _, fieldErr := range valuesErr.Errors {
			if attr, ok := attrs[fieldErr.Field]; ok {
				metrics.ValidationFailures.WithLabelValues(string(attr.Type)).Inc()
			}
		}
		return nil, valuesErr
	}

	if err := s.checkUnique(ctx, attrs, normalized, excludeItem); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *Service) attributeIndex(ctx context.Context) (map[string]domain.Attribute, error) {
	attrs, err := s.attrs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attribute definitions: %w", err)
	}
	index := make(map[string]domain.Attribute, len(attrs))
	for _, attr := range attrs {
		index[attr.Key] = attr
	}
	return index, nil
}

// checkUnique scans existing items for collisions on unique attributes.
// Stored values are re-normalized through the codec before comparison so the
// check is not sensitive to wire-shape differences.
func (s *Service) checkUnique(ctx context.Context, attrs map[string]domain.Attribute, normalized map[string]any, excludeItem uuid.UUID) error {
	var uniqueKeys []string
	for key, attr := range attrs {
		if attr.Unique {
			if _, ok := normalized[key]; ok {
				uniqueKeys = append(uniqueKeys, key)
			}
		}
	}
	if len(uniqueKeys) == 0 {
		return nil
	}

	existing, err := s.items.List(ctx)
	if err != nil {
		return fmt.Errorf("load items for uniqueness check: %w", err)
	}
	for _, item := range existing {
		if item.ID == excludeItem {
			continue
		}
		for _, key := range uniqueKeys {
			stored, ok := item.Values[key]
			if !ok {
				continue
			}
			attr := attrs[key]
			canonical := s.cdc.Serialize(s.cdc.Parse(attr.Type, stored))
			if reflect.DeepEqual(canonical, normalized[key]) {
				return fmt.Errorf("%w: attribute %q", ErrUniqueViolation, key)
			}
		}
	}
	return nil
}

// record writes an audit entry; audit failures are logged but never fail the
// mutation that triggered them.
func (s *Service) record(ctx context.Context, entityType, entityID string, action domain.HistoryAction, actor *domain.Actor, before, after map[string]any) {
	changes := history.BuildChanges(before, after)
	entry := domain.HistoryEntry{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Timestamp:  time.Now(),
		Actor:      actor,
		Summary:    history.Summarize(entityType, action, changes),
		Changes:    changes,
	}
	if err := s.hist.Record(ctx, entry); err != nil {
		s.logger.Warn("audit record failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}
