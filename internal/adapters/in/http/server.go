package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"dronedelivery/internal/adapters/out/geojson"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/region"
	"dronedelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// PlanIDHeader carries the plan identifier. A valid UUID sent by the client
// is reused, otherwise a new one is generated.
const PlanIDHeader = "X-Plan-ID"

const geoJSONContentType = "application/geo+json"

// Server handles HTTP requests by delegating to the query handlers and the
// geometry kernel.
type Server struct {
	// Query handlers
	validateOrderHandler    queries.ValidateOrderQueryHandler
	calcDeliveryPathHandler queries.CalcDeliveryPathQueryHandler

	grid      kernel.Grid
	serviceID string
	logger    *slog.Logger
}

// NewServer creates a server. grid answers isCloseTo and nextPosition and
// should be the grid the pathfinder searches with.
func NewServer(
	validateOrderHandler queries.ValidateOrderQueryHandler,
	calcDeliveryPathHandler queries.CalcDeliveryPathQueryHandler,
	grid kernel.Grid,
	serviceID string,
	logger *slog.Logger,
) *Server {
	return &Server{
		validateOrderHandler:    validateOrderHandler,
		calcDeliveryPathHandler: calcDeliveryPathHandler,
		grid:                    grid,
		serviceID:               serviceID,
		logger:                  logger.With("component", "http_server"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetUUID handles GET /uuid - returns the service identifier.
func (s *Server) GetUUID(ctx echo.Context) error {
	return ctx.String(http.StatusOK, s.serviceID)
}

// DistanceTo handles POST /distanceTo.
func (s *Server) DistanceTo(ctx echo.Context) error {
	var req LngLatPairRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	p1, p2, err := positionPair(req)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return ctx.JSON(http.StatusOK, p1.DistanceTo(p2))
}

// IsCloseTo handles POST /isCloseTo.
func (s *Server) IsCloseTo(ctx echo.Context) error {
	var req LngLatPairRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	p1, p2, err := positionPair(req)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return ctx.JSON(http.StatusOK, s.grid.IsClose(p1, p2))
}

// NextPosition handles POST /nextPosition.
func (s *Server) NextPosition(ctx echo.Context) error {
	var req LngLatAngleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	start, err := req.Start.toDomain()
	if err != nil {
		return badRequest(ctx, "start: "+err.Error())
	}
	next, err := s.grid.Step(start, kernel.Angle(req.Angle))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return ctx.JSON(http.StatusOK, fromPosition(next))
}

// IsInRegion handles POST /isInRegion. Boundary points count as inside.
func (s *Server) IsInRegion(ctx echo.Context) error {
	var req LngLatRegionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	p, err := req.Position.toDomain()
	if err != nil {
		return badRequest(ctx, "position: "+err.Error())
	}
	r, err := req.Region.toDomain()
	if err != nil {
		return badRequest(ctx, "region: "+err.Error())
	}
	return ctx.JSON(http.StatusOK, region.Contains(r, p))
}

// ValidateOrder handles POST /validateOrder. Invalid orders answer 400 with
// the same body shape as valid ones.
func (s *Server) ValidateOrder(ctx echo.Context) error {
	var req Order
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	resp, err := s.validateOrderHandler.Handle(ctx.Request().Context(), queries.NewValidateOrderQuery(req.toDomain()))
	if err != nil {
		return s.failure(ctx, err)
	}

	status := http.StatusOK
	if !resp.Result.IsValid() {
		status = http.StatusBadRequest
	}
	return ctx.JSON(status, fromValidationResult(resp.Result))
}

// CalcDeliveryPath handles POST /calcDeliveryPath.
func (s *Server) CalcDeliveryPath(ctx echo.Context) error {
	resp, err := s.planDelivery(ctx)
	if err != nil {
		return s.failure(ctx, err)
	}
	return ctx.JSON(http.StatusOK, fromPositions(resp.Path.Waypoints))
}

// CalcDeliveryPathAsGeoJSON handles POST /calcDeliveryPathAsGeoJson. With
// withRegions=true the central area and the no-fly zones are added as
// polygon features after the path.
func (s *Server) CalcDeliveryPathAsGeoJSON(ctx echo.Context) error {
	withRegions, _ := strconv.ParseBool(ctx.QueryParam("withRegions"))

	resp, err := s.planDelivery(ctx)
	if err != nil {
		return s.failure(ctx, err)
	}

	fc := geojson.DeliveryPath(resp.Path.Waypoints)
	if withRegions {
		geojson.AppendRegion(fc, geojson.TypeCentralArea, resp.CentralArea)
		for _, z := range resp.NoFlyZones {
			geojson.AppendRegion(fc, geojson.TypeNoFlyZone, z)
		}
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		return s.failure(ctx, err)
	}
	return ctx.Blob(http.StatusOK, geoJSONContentType, raw)
}

func (s *Server) planDelivery(ctx echo.Context) (queries.CalcDeliveryPathQueryResponse, error) {
	var req Order
	if err := ctx.Bind(&req); err != nil {
		return queries.CalcDeliveryPathQueryResponse{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	planID, err := kernel.UUIDFromString(ctx.Request().Header.Get(PlanIDHeader))
	if err != nil {
		planID = kernel.NewUUID()
	}
	ctx.Response().Header().Set(PlanIDHeader, planID.String())

	query, err := queries.NewCalcDeliveryPathQuery(req.toDomain(), planID)
	if err != nil {
		return queries.CalcDeliveryPathQueryResponse{}, err
	}
	return s.calcDeliveryPathHandler.Handle(ctx.Request().Context(), query)
}

// failure maps use case errors to responses.
func (s *Server) failure(ctx echo.Context, err error) error {
	var (
		rejected *queries.OrderRejectedError
		httpErr  *echo.HTTPError
	)

	switch {
	case errors.As(err, &httpErr):
		return ctx.JSON(httpErr.Code, Error{Code: httpErr.Code, Message: fmt.Sprint(httpErr.Message)})
	case errors.As(err, &rejected):
		return ctx.JSON(http.StatusBadRequest, fromValidationResult(rejected.Result))
	case errors.Is(err, queries.ErrNoPathFound):
		return badRequest(ctx, err.Error())
	case errors.Is(err, ports.ErrRegionDataUnavailable):
		s.logger.WarnContext(ctx.Request().Context(), "Region data unavailable", "error", err)
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Region data is unavailable",
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Request was cancelled",
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func positionPair(req LngLatPairRequest) (kernel.Position, kernel.Position, error) {
	p1, err := req.Position1.toDomain()
	if err != nil {
		return kernel.Position{}, kernel.Position{}, errors.New("position1: " + err.Error())
	}
	p2, err := req.Position2.toDomain()
	if err != nil {
		return kernel.Position{}, kernel.Position{}, errors.New("position2: " + err.Error())
	}
	return p1, p2, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
