package visibility

import (
	"slices"

	"github.com/betterhouse/syndic/internal/copro"
)

// Viewer carrega o usuário e os conjuntos derivados usados nos filtros.
type Viewer struct {
	User        copro.User
	LotIDs      []string
	BuildingIDs []string
}

// Snapshot é o subconjunto do store usado para montar o Viewer.
type Snapshot interface {
	OwnedLotIDs(userID string) []string
	UserBuildingIDs(userID string) []string
}

func NewViewer(user copro.User, snap Snapshot) Viewer {
	return Viewer{
		User:        user,
		LotIDs:      snap.OwnedLotIDs(user.ID),
		BuildingIDs: snap.UserBuildingIDs(user.ID),
	}
}

func (v Viewer) IsSyndic() bool {
	return v.User.IsSyndic()
}

func (v Viewer) OwnsLot(lotID string) bool {
	return lotID != "" && slices.Contains(v.LotIDs, lotID)
}

func (v Viewer) InBuilding(buildingID string) bool {
	return slices.Contains(v.BuildingIDs, buildingID)
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func all[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
