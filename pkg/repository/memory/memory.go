package memory

import (
	"github.com/codcodedob/aura/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	exchange *exchangeRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		exchange: newExchangeRepository(),
	}
}

func (m *Memory) Exchange() interfaces.ExchangeRepository {
	return m.exchange
}

func (m *Memory) Close() error {
	return nil
}
