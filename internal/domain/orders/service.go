package orders

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"pet-shop/internal/platform/logger"
	"pet-shop/internal/ports/catalog"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoneAvailable = errors.New("no pet of this type is available")
)

// StoreInstance es una instancia remota de petstore con su identificador
// fijo (1 o 2).
type StoreInstance struct {
	ID     int
	Client catalog.Client
}

type Service struct {
	stores []StoreInstance // orden fijo: store 1 antes que store 2
	ledger Ledger
	pick   func(n int) int
	newID  func() string
	log    logger.Logger
}

func NewService(stores []StoreInstance, ledger Ledger, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		stores: stores,
		ledger: ledger,
		pick:   rand.Intn,
		newID:  uuid.NewString,
		log:    log,
	}
}

// PurchaseInput: Store y PetName son opcionales. Nombrar una mascota
// exige nombrar también la tienda.
type PurchaseInput struct {
	Purchaser string
	PetType   string
	Store     *int
	PetName   *string
}

// Purchase recorre las tiendas candidatas en orden y se detiene en la
// primera que tenga una mascota elegible: resuelve el id del pet-type,
// lista candidatas, elige (por nombre o al azar) y la borra remotamente.
// Un delete que no sea exitoso hace fallar la compra entera, sin probar
// otra tienda. El delete remoto es el único árbitro de una carrera entre
// compras concurrentes.
func (s *Service) Purchase(ctx context.Context, in PurchaseInput) (Transaction, error) {
	if in.Store != nil && *in.Store != 1 && *in.Store != 2 {
		return Transaction{}, ErrInvalidInput
	}
	if in.PetName != nil && in.Store == nil {
		return Transaction{}, ErrInvalidInput
	}

	for _, cand := range s.stores {
		if in.Store != nil && cand.ID != *in.Store {
			continue
		}

		typeID, err := cand.Client.ResolveTypeID(ctx, in.PetType)
		if err != nil {
			s.log.Debug("store skipped: pet type not resolved", map[string]any{
				"store": cand.ID,
				"type":  in.PetType,
				"err":   err.Error(),
			})
			continue
		}

		pets, err := cand.Client.ListPets(ctx, typeID)
		if err != nil || len(pets) == 0 {
			continue
		}

		var chosen string
		if in.PetName != nil {
			for _, p := range pets {
				if strings.EqualFold(p.Name, *in.PetName) {
					chosen = p.Name
					break
				}
			}
			if chosen == "" {
				continue
			}
		} else {
			chosen = pets[s.pick(len(pets))].Name
		}

		if err := cand.Client.DeletePet(ctx, typeID, chosen); err != nil {
			s.log.Warn("remote delete failed, purchase aborted", map[string]any{
				"store": cand.ID,
				"pet":   chosen,
				"err":   err.Error(),
			})
			return Transaction{}, ErrNoneAvailable
		}

		t := Transaction{
			Purchaser:  in.Purchaser,
			PetType:    in.PetType,
			Store:      cand.ID,
			PetName:    chosen,
			PurchaseID: s.newID(),
		}
		if err := s.ledger.Append(ctx, t); err != nil {
			return Transaction{}, err
		}
		return t, nil
	}

	return Transaction{}, ErrNoneAvailable
}

func (s *Service) ListTransactions(ctx context.Context, f Filter) ([]Transaction, error) {
	return s.ledger.List(ctx, f)
}
