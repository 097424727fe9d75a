// Package mocks provides testify mocks in the mockery layout.
package mocks

import (
	controller "github.com/mouse-blink/earlyexit/internal/controller"
	model "github.com/mouse-blink/earlyexit/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// Close provides a mock function with no fields
func (_m *MockUI) Close() {
	_m.Called()
}

// DisplayDiff provides a mock function with given fields: path, unified
func (_m *MockUI) DisplayDiff(path model.Path, unified string) {
	_m.Called(path, unified)
}

// DisplayFileResult provides a mock function with given fields: result
func (_m *MockUI) DisplayFileResult(result model.FileResult) {
	_m.Called(result)
}

// DisplaySummary provides a mock function with given fields: results
func (_m *MockUI) DisplaySummary(results []model.FileResult) error {
	ret := _m.Called(results)

	if len(ret) == 0 {
		panic("no return value specified for DisplaySummary")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func([]model.FileResult) error); ok {
		r0 = rf(results)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Start provides a mock function with given fields: options
func (_m *MockUI) Start(options ...controller.StartOption) error {
	_va := make([]interface{}, len(options))
	for _i := range options {
		_va[_i] = options[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	if len(ret) == 0 {
		panic("no return value specified for Start")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(...controller.StartOption) error); ok {
		r0 = rf(options...)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
