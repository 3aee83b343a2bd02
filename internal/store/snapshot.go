package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/betterhouse/syndic/internal/copro"
)

var ErrNotFound = errors.New("store: registro não encontrado")

// Snapshot é a visão imutável dos dados carregados.
type Snapshot struct {
	Dataset

	Version  string
	LoadedAt time.Time

	users      map[string]int
	buildings  map[string]int
	lots       map[string]int
	tickets    map[string]int
	ags        map[string]int
	providers  map[string]int
	ownedLots  map[string][]string
	userBlocks map[string][]string
	dangling   []Problem
}

// NewSnapshot indexa o dataset já validado.
func NewSnapshot(ds *Dataset, loadedAt time.Time) *Snapshot {
	ds.normalize()
	s := &Snapshot{
		Dataset:    *ds,
		Version:    versionOf(ds),
		LoadedAt:   loadedAt,
		users:      indexBy(ds.Users, func(u copro.User) string { return u.ID }),
		buildings:  indexBy(ds.Buildings, func(b copro.Building) string { return b.ID }),
		lots:       indexBy(ds.Lots, func(l copro.Lot) string { return l.ID }),
		tickets:    indexBy(ds.Tickets, func(t copro.Ticket) string { return t.ID }),
		ags:        indexBy(ds.Assemblies, func(a copro.AGEvent) string { return a.ID }),
		providers:  indexBy(ds.Providers, func(p copro.Provider) string { return p.ID }),
		ownedLots:  make(map[string][]string),
		userBlocks: make(map[string][]string),
	}

	seenBlock := make(map[string]map[string]bool)
	for _, lot := range ds.Lots {
		s.ownedLots[lot.OwnerID] = append(s.ownedLots[lot.OwnerID], lot.ID)
		if seenBlock[lot.OwnerID] == nil {
			seenBlock[lot.OwnerID] = make(map[string]bool)
		}
		if !seenBlock[lot.OwnerID][lot.BuildingID] {
			seenBlock[lot.OwnerID][lot.BuildingID] = true
			s.userBlocks[lot.OwnerID] = append(s.userBlocks[lot.OwnerID], lot.BuildingID)
		}
	}
	s.dangling = s.danglingReferences()
	return s
}

// versionOf deriva a versão do conteúdo; cargas idênticas mantêm a versão.
func versionOf(ds *Dataset) string {
	payload, err := json.Marshal(ds)
	if err != nil {
		return uuid.NewString()
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:12])
}

// danglingReferences lista chaves estrangeiras sem alvo. A exibição usa
// copro.UnknownName para elas.
func (s *Snapshot) danglingReferences() []Problem {
	var out []Problem
	missing := func(field, kind, id string) {
		out = append(out, Problem{Field: field, Rule: "ref", Message: kind + " inexistente " + id})
	}
	for i, l := range s.Lots {
		if _, ok := s.buildings[l.BuildingID]; !ok {
			missing(fmt.Sprintf("lots[%d].building_id", i), "bloco", l.BuildingID)
		}
		if _, ok := s.users[l.OwnerID]; !ok {
			missing(fmt.Sprintf("lots[%d].owner_id", i), "proprietário", l.OwnerID)
		}
	}
	for i, r := range s.Records {
		if r.RelatedLotID == "" {
			continue
		}
		if _, ok := s.lots[r.RelatedLotID]; !ok {
			missing(fmt.Sprintf("finance_records[%d].related_lot_id", i), "lote", r.RelatedLotID)
		}
	}
	return out
}

// MissingReferences devolve as referências sem alvo encontradas na carga.
func (s *Snapshot) MissingReferences() []Problem {
	return append([]Problem(nil), s.dangling...)
}

func indexBy[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, item := range items {
		idx[key(item)] = i
	}
	return idx
}

func lookup[T any](items []T, idx map[string]int, id string) (T, error) {
	var zero T
	i, ok := idx[id]
	if !ok {
		return zero, ErrNotFound
	}
	return items[i], nil
}

func (s *Snapshot) User(id string) (copro.User, error) {
	return lookup(s.Users, s.users, id)
}

func (s *Snapshot) Building(id string) (copro.Building, error) {
	return lookup(s.Buildings, s.buildings, id)
}

func (s *Snapshot) Lot(id string) (copro.Lot, error) {
	return lookup(s.Lots, s.lots, id)
}

func (s *Snapshot) Ticket(id string) (copro.Ticket, error) {
	return lookup(s.Tickets, s.tickets, id)
}

func (s *Snapshot) AG(id string) (copro.AGEvent, error) {
	return lookup(s.Assemblies, s.ags, id)
}

func (s *Snapshot) Provider(id string) (copro.Provider, error) {
	return lookup(s.Providers, s.providers, id)
}

// UserName devolve o nome ou copro.UnknownName para referências ausentes.
func (s *Snapshot) UserName(id string) string {
	u, err := s.User(id)
	if err != nil {
		return copro.UnknownName
	}
	return u.Name
}

// ProviderName segue a mesma regra de UserName.
func (s *Snapshot) ProviderName(id string) string {
	p, err := s.Provider(id)
	if err != nil {
		return copro.UnknownName
	}
	return p.Name
}

// OwnedLotIDs usa owner_id do lote como fonte de verdade.
func (s *Snapshot) OwnedLotIDs(userID string) []string {
	return append([]string{}, s.ownedLots[userID]...)
}

// UserBuildingIDs lista os blocos onde o usuário possui lotes.
func (s *Snapshot) UserBuildingIDs(userID string) []string {
	return append([]string{}, s.userBlocks[userID]...)
}

// Intervention procura sem índice; a coleção é pequena.
func (s *Snapshot) Intervention(id string) (copro.Intervention, error) {
	for _, it := range s.Interventions {
		if it.ID == id {
			return it, nil
		}
	}
	return copro.Intervention{}, ErrNotFound
}

// ShareTotal soma os tantièmes gerais de todos os lotes.
func (s *Snapshot) ShareTotal() int {
	total := 0
	for _, l := range s.Lots {
		total += l.SharesGeneral
	}
	return total
}

// ShareTotalFor soma os tantièmes gerais dos lotes do usuário.
func (s *Snapshot) ShareTotalFor(userID string) int {
	total := 0
	for _, id := range s.ownedLots[userID] {
		if l, err := s.Lot(id); err == nil {
			total += l.SharesGeneral
		}
	}
	return total
}
