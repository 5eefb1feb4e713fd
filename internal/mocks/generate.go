// Package mocks provides mock implementations of the revo-ui ports for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// session and remote API interfaces declared in internal/ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "sid").Return(sess, nil)
package mocks

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/revobooking/revo-ui/internal/ports SessionStore

// Generate mock for IdentityAPI interface from internal/ports package.
// This creates MockIdentityAPI with methods: Login, Register, Me
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_api_mock.go github.com/revobooking/revo-ui/internal/ports IdentityAPI

// Generate mock for BookingAPI interface from internal/ports package.
// This creates MockBookingAPI with methods: List, Mine, Create, UpdateStatus, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=booking_api_mock.go github.com/revobooking/revo-ui/internal/ports BookingAPI

// Generate generic mock for ResourceAPI interface from internal/ports package.
// Instantiate per collection, e.g. NewMockResourceAPI[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest].
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=resource_api_mock.go github.com/revobooking/revo-ui/internal/ports ResourceAPI
