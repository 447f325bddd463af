package http

import (
	"fmt"

	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/application/usecases/queries"
)

const (
	replyNewOrder        = "Starting a new order. What would you like to have?"
	replyMissingItems    = "Could not process your order. Please specify the item and quantity."
	replyMismatch        = "The number of items and quantities do not match."
	replyInvalidQuantity = "Invalid quantity provided. Please provide a valid number."
	replyNoActiveOrder   = "No active order found for this session"
	replyOrderNotPlaced  = "Sorry! I could not place your order. Please try again."
	replyMissingOrderID  = "Please provide an order ID to track."
	replyInvalidOrderID  = "Please provide a valid order ID to track."
	replyTryAgain        = "Sorry, something went wrong on our side. Please try again."
)

func replyAdded(s commands.CartSummary) string {
	return fmt.Sprintf("Added %s to your order. Your order now includes %s. Anything else?",
		s.AppliedText(), s.CartText())
}

func replyRemoved(s commands.CartSummary) string {
	if len(s.Cart) == 0 {
		return fmt.Sprintf("Removed %s from your order. Your order is now empty.", s.AppliedText())
	}
	return fmt.Sprintf("Removed %s from your order. Now your order includes %s", s.AppliedText(), s.CartText())
}

func replyNotInCart(item string, quantity int) string {
	return fmt.Sprintf("%d %s is not present in your current order.", quantity, item)
}

func replyPlaced(r commands.CompleteOrderResult) string {
	text := fmt.Sprintf("Awesome! Your order is placed successfully! Here is your order id # %d.", r.OrderID.Int64())
	if r.TotalKnown {
		text += fmt.Sprintf(" Your order total is %s which you can pay at the time of delivery", r.Total.StringFixed(2))
	}
	return text
}

func replyTracked(r queries.TrackOrderQueryResponse) string {
	switch r.State {
	case queries.TrackingFound:
		return fmt.Sprintf("Order # %d is %s.", r.OrderID.Int64(), r.Status)
	case queries.TrackingNotFound:
		return fmt.Sprintf("No order found with order ID %d.", r.OrderID.Int64())
	}
	return fmt.Sprintf("Sorry, I could not look up order # %d right now. Please try again later.", r.OrderID.Int64())
}
