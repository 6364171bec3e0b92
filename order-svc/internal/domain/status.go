package domain

type OrderStatus string

const (
	StatusCreated    OrderStatus = "created"
	StatusPending    OrderStatus = "pending"
	StatusProgress   OrderStatus = "progress"
	StatusFinished   OrderStatus = "finished"
	StatusDispatched OrderStatus = "dispatched"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var statusFlow = []OrderStatus{
	StatusCreated,
	StatusPending,
	StatusProgress,
	StatusFinished,
	StatusDispatched,
	StatusDelivered,
}

func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	return s.rank() >= 0
}

func (s OrderStatus) rank() int {
	for i, st := range statusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransition reports whether the kitchen may move an order from s to next.
// The flow only moves forward; cancellation is allowed until the food is finished.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() || s == StatusCancelled {
		return false
	}
	if next == StatusCancelled {
		return s.rank() <= StatusProgress.rank()
	}
	return next.rank() > s.rank()
}
