package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type InventoryUsecase struct {
	items repo.InventoryRepository
}

func NewInventoryUsecase(items repo.InventoryRepository) *InventoryUsecase {
	return &InventoryUsecase{items: items}
}

type InventoryItemInput struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Notes string `json:"notes"`
}

func (u *InventoryUsecase) List(ctx context.Context, userID int64, kind string) ([]model.InventoryItem, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var kindFilter *model.InventoryKind
	if kind != "" {
		k, err := model.ParseInventoryKind(kind)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, err.Error())
		}
		kindFilter = &k
	}

	items, err := u.items.ListByUserID(ctx, userID, kindFilter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	return items, nil
}

func (u *InventoryUsecase) Create(ctx context.Context, userID int64, in InventoryItemInput) (model.InventoryItem, error) {
	if userID <= 0 {
		return model.InventoryItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	kind, err := model.ParseInventoryKind(in.Kind)
	if err != nil {
		return model.InventoryItem{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Label == "" {
		return model.InventoryItem{}, NewHTTPError(http.StatusBadRequest, "label is required")
	}

	item := model.InventoryItem{
		UserID:   userID,
		Kind:     kind,
		Label:    in.Label,
		Notes:    in.Notes,
		IsActive: true,
	}

	id, err := u.items.Create(ctx, item)
	if err != nil {
		return model.InventoryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	item.ID = id
	return item, nil
}

func (u *InventoryUsecase) Update(ctx context.Context, userID int64, itemID int64, in InventoryItemInput) (model.InventoryItem, error) {
	item, err := u.findOwned(ctx, userID, itemID)
	if err != nil {
		return model.InventoryItem{}, err
	}

	if in.Kind != "" {
		kind, perr := model.ParseInventoryKind(in.Kind)
		if perr != nil {
			return model.InventoryItem{}, NewHTTPError(http.StatusBadRequest, perr.Error())
		}
		item.Kind = kind
	}
	if in.Label != "" {
		item.Label = in.Label
	}
	item.Notes = in.Notes

	if err := u.items.Update(ctx, item); err != nil {
		return model.InventoryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

func (u *InventoryUsecase) Delete(ctx context.Context, userID int64, itemID int64) error {
	item, err := u.findOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := u.items.Delete(ctx, item.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ownership failures read as 404 so item ids are not probeable
func (u *InventoryUsecase) findOwned(ctx context.Context, userID int64, itemID int64) (model.InventoryItem, error) {
	if userID <= 0 {
		return model.InventoryItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return model.InventoryItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.items.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.InventoryItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.InventoryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.UserID != userID {
		return model.InventoryItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return item, nil
}
