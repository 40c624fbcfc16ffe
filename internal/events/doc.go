// Package events is a small in-process publish/subscribe layer.
//
// Services emit domain events (a user registered, a play was recorded)
// after their writes commit; handlers such as the metrics recorder react
// to them without the services knowing who listens.
package events
