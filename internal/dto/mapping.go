package dto

import (
	"fmt"
	"reflect"

	"github.com/artauction/auctionapi/internal/domain"
)

type mappingKey struct {
	src, dst reflect.Type
}

var mappings = map[mappingKey]interface{}{}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func register[S, D any](fn func(S) D) {
	mappings[mappingKey{typeOf[S](), typeOf[D]()}] = fn
}

// Adapt maps src onto a new D using the registered mapping for the pair.
// It panics when no mapping exists, which is a programming error.
func Adapt[D, S any](src S) D {
	fn, ok := mappings[mappingKey{typeOf[S](), typeOf[D]()}].(func(S) D)
	if !ok {
		panic(fmt.Sprintf("dto: no mapping from %s to %s", typeOf[S](), typeOf[D]()))
	}
	return fn(src)
}

// AdaptAll maps every element of src. A nil slice yields an empty one.
func AdaptAll[D, S any](src []S) []D {
	out := make([]D, 0, len(src))
	for _, s := range src {
		out = append(out, Adapt[D](s))
	}
	return out
}

func init() {
	register(artistToDTO)
	register(createArtistToEntity)
	register(updateArtistToEntity)
	register(categoryToDTO)
	register(createCategoryToEntity)
	register(updateCategoryToEntity)
	register(eventToDTO)
	register(createEventToEntity)
	register(updateEventToEntity)
	register(eventArtistToDTO)
	register(productToDTO)
	register(productToRow)
	register(createProductToEntity)
	register(updateProductToEntity)
	register(reviewToDTO)
	register(createReviewToEntity)
	register(updateReviewToEntity)
	register(orderToDTO)
	register(orderItemToDTO)
	register(createOrderToEntity)
	register(updateOrderToEntity)
}

func artistToDTO(a domain.Artist) ArtistDTO {
	return ArtistDTO{
		ID:               a.ID,
		Name:             a.Name,
		ImageUrl:         a.ImageUrl,
		Bio:              a.Bio,
		Genre:            a.Genre,
		Country:          a.Country,
		BirthDate:        a.BirthDate,
		DeathDate:        a.DeathDate,
		WebsiteUrl:       a.WebsiteUrl,
		SocialMediaLinks: a.SocialMediaLinks,
		Version:          a.Version,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func createArtistToEntity(c CreateArtistDTO) domain.Artist {
	return domain.Artist{
		Name:             c.Name,
		ImageUrl:         c.ImageUrl,
		Bio:              c.Bio,
		Genre:            c.Genre,
		Country:          c.Country,
		BirthDate:        c.BirthDate,
		DeathDate:        c.DeathDate,
		WebsiteUrl:       c.WebsiteUrl,
		SocialMediaLinks: c.SocialMediaLinks,
	}
}

func updateArtistToEntity(u UpdateArtistDTO) domain.Artist {
	a := createArtistToEntity(u.CreateArtistDTO)
	a.ID, a.Version = u.ID, u.Version
	return a
}

func categoryToDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Version: c.Version}
}

func createCategoryToEntity(c CreateCategoryDTO) domain.Category {
	return domain.Category{Name: c.Name}
}

func updateCategoryToEntity(u UpdateCategoryDTO) domain.Category {
	c := createCategoryToEntity(u.CreateCategoryDTO)
	c.ID, c.Version = u.ID, u.Version
	return c
}

func eventToDTO(e domain.Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Version:     e.Version,
	}
}

// createEventToEntity stores event dates in UTC.
func createEventToEntity(c CreateEventDTO) domain.Event {
	return domain.Event{
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		StartDate:   c.StartDate.UTC(),
		EndDate:     c.EndDate.UTC(),
	}
}

func updateEventToEntity(u UpdateEventDTO) domain.Event {
	e := createEventToEntity(u.CreateEventDTO)
	e.ID, e.Version = u.ID, u.Version
	return e
}

func eventArtistToDTO(l domain.EventArtist) EventArtistDTO {
	return EventArtistDTO{EventID: l.EventID, ArtistID: l.ArtistID}
}

func productToDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		ArtistID:    p.ArtistID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageUrl:    p.ImageUrl,
		CategoryID:  p.CategoryID,
		Reviews:     AdaptAll[ReviewDTO](p.Reviews),
		Version:     p.Version,
	}
}

func productToRow(p domain.Product) ProductRow {
	return ProductRow{
		ID:          p.ID,
		Name:        p.Name,
		ArtistID:    p.ArtistID,
		CategoryID:  p.CategoryID,
		Price:       p.Price.StringFixed(2),
		Reviews:     len(p.Reviews),
		Description: p.Description,
	}
}

func createProductToEntity(c CreateProductDTO) domain.Product {
	return domain.Product{
		ArtistID:    c.ArtistID,
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		Price:       NonNegative(c.Price),
		ImageUrl:    c.ImageUrl,
	}
}

func updateProductToEntity(u UpdateProductDTO) domain.Product {
	p := domain.Product{
		ArtistID:    u.ArtistID,
		CategoryID:  u.CategoryID,
		Name:        u.Name,
		Description: u.Description,
		Price:       u.Price,
		ImageUrl:    u.ImageUrl,
	}
	p.ID, p.Version = u.ID, u.Version
	return p
}

func reviewToDTO(r domain.Review) ReviewDTO {
	return ReviewDTO{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ReviewerName:  r.ReviewerName,
		ReviewerEmail: r.ReviewerEmail,
		Comment:       r.Comment,
		Rating:        r.Rating,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
	}
}

func createReviewToEntity(c CreateReviewDTO) domain.Review {
	return domain.Review{
		ProductID:     c.ProductID,
		ReviewerName:  c.ReviewerName,
		ReviewerEmail: c.ReviewerEmail,
		Comment:       CommentOrDefault(c.Comment),
		Rating:        RatingOrDefault(c.Rating),
	}
}

func updateReviewToEntity(u UpdateReviewDTO) domain.Review {
	r := domain.Review{
		ProductID:     u.ProductID,
		ReviewerName:  u.ReviewerName,
		ReviewerEmail: u.ReviewerEmail,
		Comment:       u.Comment,
		Rating:        u.Rating,
	}
	r.ID, r.Version = u.ID, u.Version
	return r
}

func orderItemToDTO(i domain.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Price:     i.Price,
	}
}

func orderToDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		OrderDate:     o.OrderDate,
		OrderStatus:   o.OrderStatus,
		TotalAmount:   o.TotalAmount,
		OrderItems:    AdaptAll[OrderItemDTO](o.OrderItems),
		Version:       o.Version,
		CreatedAt:     o.CreatedAt,
	}
}

func createOrderToEntity(c CreateOrderDTO) domain.Order {
	items := make([]domain.OrderItem, 0, len(c.OrderItems))
	for _, it := range c.OrderItems {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return domain.Order{
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		OrderDate:     DateOrNow(c.OrderDate),
		OrderStatus:   StatusOrPending(c.OrderStatus),
		TotalAmount:   c.TotalAmount,
		OrderItems:    items,
	}
}

func updateOrderToEntity(u UpdateOrderDTO) domain.Order {
	o := createOrderToEntity(u.CreateOrderDTO)
	o.ID, o.Version = u.ID, u.Version
	return o
}

// TargetID is the id named in an update body.
func (d UpdateArtistDTO) TargetID() int64   { return d.ID }
func (d UpdateCategoryDTO) TargetID() int64 { return d.ID }
func (d UpdateEventDTO) TargetID() int64    { return d.ID }
func (d UpdateProductDTO) TargetID() int64  { return d.ID }
func (d UpdateReviewDTO) TargetID() int64   { return d.ID }
func (d UpdateOrderDTO) TargetID() int64    { return d.ID }
