package ilp

import (
	"fmt"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/region"
)

type lngLatDTO struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type namedRegionDTO struct {
	Name     string      `json:"name"`
	Vertices []lngLatDTO `json:"vertices"`
}

type pizzaDTO struct {
	Name         string `json:"name"`
	PriceInPence int    `json:"priceInPence"`
}

type restaurantDTO struct {
	Name        string     `json:"name"`
	Location    lngLatDTO  `json:"location"`
	OpeningDays []string   `json:"openingDays"`
	Menu        []pizzaDTO `json:"menu"`
}

func (d namedRegionDTO) toDomain() (region.NamedRegion, error) {
	pairs := make([][2]float64, len(d.Vertices))
	for i, v := range d.Vertices {
		pairs[i] = [2]float64{v.Lng, v.Lat}
	}
	poly, err := region.FromPairs(pairs)
	if err != nil {
		return region.NamedRegion{}, fmt.Errorf("region %q: %w", d.Name, err)
	}
	return region.NamedRegion{Name: d.Name, Polygon: poly}, nil
}

func (d restaurantDTO) toDomain() (order.Restaurant, error) {
	loc, err := kernel.NewPosition(d.Location.Lng, d.Location.Lat)
	if err != nil {
		return order.Restaurant{}, fmt.Errorf("restaurant %q location: %w", d.Name, err)
	}

	days := make([]time.Weekday, 0, len(d.OpeningDays))
	for _, s := range d.OpeningDays {
		day, ok := order.ParseWeekday(s)
		if !ok {
			return order.Restaurant{}, fmt.Errorf("restaurant %q: unknown opening day %q", d.Name, s)
		}
		days = append(days, day)
	}

	menu := make([]order.Pizza, len(d.Menu))
	for i, p := range d.Menu {
		menu[i] = order.Pizza{Name: p.Name, PriceInPence: p.PriceInPence}
	}

	return order.Restaurant{Name: d.Name, Location: loc, OpeningDays: days, Menu: menu}, nil
}
