// Package mocks provides mock implementations for testing the tablewatch monitor.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockAlertStoreRepository(ctrl)
//	mockStore.EXPECT().QueryPendingAlerts(gomock.Any(), gomock.Any()).Return(alerts, nil)
package mocks

// Generate mock for AlertStoreRepository interface from internal/core package.
// This creates MockAlertStoreRepository with methods for all AlertStoreRepository interface methods:
// QueryPendingAlerts, QueryLastSentTimes
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=alert_store_repository_mock.go github.com/tablewatch/tablewatch/internal/core AlertStoreRepository

// Generate mock for OperationInvoker interface from internal/core package.
// This creates MockOperationInvoker with methods for all OperationInvoker interface methods:
// Invoke
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=operation_invoker_mock.go github.com/tablewatch/tablewatch/internal/core OperationInvoker

// Generate mock for LastSentCache interface from internal/core package.
// This creates MockLastSentCache with methods for all LastSentCache interface methods:
// Get, Put, Invalidate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=last_sent_cache_mock.go github.com/tablewatch/tablewatch/internal/core LastSentCache

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/tablewatch/tablewatch/internal/core CacheRepository
