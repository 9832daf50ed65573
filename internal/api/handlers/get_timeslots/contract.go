package get_timeslots

import (
	"context"

	getTimeslots "github.com/prisma-detailing/DetailingService/internal/usecase/get_timeslots"
)

type GetTimeslotsUseCase interface {
	Execute(ctx context.Context, req *getTimeslots.Request) (*getTimeslots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
