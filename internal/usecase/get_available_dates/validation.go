package get_available_dates

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.DaysAhead < 0 {
		return fmt.Errorf("%w: daysAhead must not be negative", ErrInvalidInput)
	}

	return nil
}
