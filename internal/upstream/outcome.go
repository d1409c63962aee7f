package upstream

// The legacy storefront signals success through exact response phrases. The
// client keeps that wire contract and maps each body onto a structured outcome
// so callers never string-compare themselves.
const (
	MsgCartAdded       = "Product has successfully added to your cart."
	MsgCartUpdated     = "The product quantity has successfully updated."
	MsgCartRemoved     = "Product has successfully removed from your cart."
	MsgWishlistAdded   = "Product has successfully added to your wish list."
	MsgWishlistRemoved = "Product has successfully removed from your wish list."

	// MsgTryAgain is shown whenever the upstream cannot be reached.
	MsgTryAgain = "There was an error! Try again later."
)

type Status string

const (
	StatusAdded    Status = "added"
	StatusUpdated  Status = "updated"
	StatusRemoved  Status = "removed"
	StatusLiked    Status = "liked"
	StatusUnliked  Status = "unliked"
	StatusRejected Status = "rejected"
	StatusRetry    Status = "retry"
)

// Outcome pairs the matched status with the verbatim upstream message.
type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the upstream acknowledged the operation.
func (o Outcome) OK() bool {
	switch o.Status {
	case StatusAdded, StatusUpdated, StatusRemoved, StatusLiked, StatusUnliked:
		return true
	}
	return false
}

type operation string

const (
	opCartAdd    operation = "cart_add"
	opCartUpdate operation = "cart_update"
	opCartRemove operation = "cart_remove"
	opLikeToggle operation = "like_toggle"
)

func matchOutcome(op operation, body string) Outcome {
	switch op {
	case opCartAdd:
		if body == MsgCartAdded {
			return Outcome{Status: StatusAdded, Message: body}
		}
	case opCartUpdate:
		if body == MsgCartUpdated {
			return Outcome{Status: StatusUpdated, Message: body}
		}
	case opCartRemove:
		if body == MsgCartRemoved {
			return Outcome{Status: StatusRemoved, Message: body}
		}
	case opLikeToggle:
		if body == MsgWishlistAdded {
			return Outcome{Status: StatusLiked, Message: body}
		}
		if body == MsgWishlistRemoved {
			return Outcome{Status: StatusUnliked, Message: body}
		}
	}
	return Outcome{Status: StatusRejected, Message: body}
}
