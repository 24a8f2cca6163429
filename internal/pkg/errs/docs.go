// Package errs provides the error types shared by the kiosk service.
//
// Every type follows the same shape:
//   - a sentinel error variable (e.g., ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details of the failure
//   - NewXxxError / NewXxxErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// The lifecycle taxonomy maps onto these types: an unknown order token is an
// ObjectNotFoundError, an illegal state change is an InvalidTransitionError, a
// failed repository call is a StorageUnavailableError and a gateway failure after
// an order became ready is a NotificationFailedError.
package errs
