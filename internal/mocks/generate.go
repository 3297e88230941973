// Package mocks provides generated mock implementations for testing comicd.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the service-layer interfaces. To regenerate after interface changes:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockJobStore(ctrl)
//	store.EXPECT().Create("12345").Return(job)
package mocks

// Generate mock for the JobStore interface from internal/service.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_store_mock.go github.com/comicdl/comicd/internal/service JobStore

// Generate mock for the Dispatcher interface from internal/service.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=dispatcher_mock.go github.com/comicdl/comicd/internal/service Dispatcher

// Generate mock for the Fetcher interface from internal/fetch.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=fetcher_mock.go github.com/comicdl/comicd/internal/fetch Fetcher
