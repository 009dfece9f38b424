package devserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type loginResult struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

type refreshResult struct {
	Token string `json:"token"`
}

type introspectResult struct {
	Valid bool `json:"valid"`
}

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

func bindValid(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return err
	}
	return c.Validate(v)
}

func (s *Server) registerRoutes(e *echo.Echo) {
	identity := e.Group("/identity")
	identity.POST("/auth/token", s.login)
	identity.POST("/auth/refresh", s.refresh)
	identity.POST("/auth/introspect", s.introspect)
	identity.POST("/auth/logout", s.logout)
	identity.POST("/users/registration", s.register)

	e.GET("/product/products", s.listProducts)
	e.GET("/product/products/:id", s.getProduct)
	e.GET("/product/categories", s.listCategories)
	e.GET("/inventory/inventories/:productId", s.getStock)

	e.GET("/discount/discounts/:code", s.getDiscount, s.requireAuth)

	cart := e.Group("/cart/carts", s.requireAuth)
	cart.GET("", s.getCart)
	cart.DELETE("", s.clearCart)
	cart.POST("/items", s.addCartItem)
	cart.PUT("/items/:productId", s.updateCartItem)
	cart.DELETE("/items/:productId", s.removeCartItem)

	orders := e.Group("/order/orders", s.requireAuth)
	orders.POST("", s.placeOrder)
	orders.GET("", s.listOrders)

	profile := e.Group("/profile", s.requireAuth)
	profile.GET("/users/my-profile", s.getProfile)
	profile.PUT("/users/my-profile", s.updateProfile)
	profile.GET("/addresses", s.listAddresses)
	profile.POST("/addresses", s.addAddress)
	profile.DELETE("/addresses/:id", s.deleteAddress)
}

// Identity.

func (s *Server) login(c echo.Context) error {
	var req credentials
	if err := bindValid(c, &req); err != nil {
		return err
	}
	token, err := s.identity.Login(req.Username, req.Password)
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, loginResult{Token: token, Authenticated: true})
}

func (s *Server) register(c echo.Context) error {
	var req RegisterRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := s.identity.Register(req)
	if err != nil {
		return err
	}
	s.log.Info(c.Request().Context(), "user registered", "user", p.ID)
	return sendResult(c, http.StatusCreated, p)
}

func (s *Server) refresh(c echo.Context) error {
	var req tokenRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	token, err := s.identity.Refresh(req.Token)
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, refreshResult{Token: token})
}

func (s *Server) introspect(c echo.Context) error {
	var req tokenRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, introspectResult{Valid: s.identity.Introspect(req.Token)})
}

func (s *Server) logout(c echo.Context) error {
	var req tokenRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := s.identity.Logout(req.Token); err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, nil)
}

// Catalog and inventory.

func (s *Server) listProducts(c echo.Context) error {
	var q ProductQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, s.shop.Products(q))
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.shop.Product(c.Param("id"))
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, p)
}

func (s *Server) listCategories(c echo.Context) error {
	return sendResult(c, http.StatusOK, s.shop.Categories())
}

func (s *Server) getStock(c echo.Context) error {
	st, err := s.shop.Stock(c.Param("productId"))
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, st)
}

func (s *Server) getDiscount(c echo.Context) error {
	d, err := s.shop.Discount(c.Param("code"))
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, d)
}

// Cart.

func (s *Server) getCart(c echo.Context) error {
	return sendResult(c, http.StatusOK, s.shop.Cart(userID(c)))
}

func (s *Server) clearCart(c echo.Context) error {
	s.shop.ClearCart(userID(c))
	return sendResult(c, http.StatusOK, nil)
}

func (s *Server) addCartItem(c echo.Context) error {
	var req cartItemRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	cart, err := s.shop.AddItem(userID(c), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, cart)
}

func (s *Server) updateCartItem(c echo.Context) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return err
	}
	cart, err := s.shop.SetItem(userID(c), c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, cart)
}

func (s *Server) removeCartItem(c echo.Context) error {
	cart, err := s.shop.RemoveItem(userID(c), c.Param("productId"))
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, cart)
}

// Orders.

func (s *Server) placeOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	order, err := s.shop.PlaceOrder(userID(c), req)
	if err != nil {
		return err
	}
	s.log.Info(c.Request().Context(), "order placed", "user", userID(c), "order", order.ID, "total", order.Total.String())
	return sendResult(c, http.StatusCreated, order)
}

func (s *Server) listOrders(c echo.Context) error {
	return sendResult(c, http.StatusOK, s.shop.Orders(userID(c)))
}

// Profile and addresses.

func (s *Server) getProfile(c echo.Context) error {
	p, err := s.identity.Profile(userID(c))
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, p)
}

func (s *Server) updateProfile(c echo.Context) error {
	var req ProfileUpdate
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := s.identity.UpdateProfile(userID(c), req)
	if err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, p)
}

func (s *Server) listAddresses(c echo.Context) error {
	return sendResult(c, http.StatusOK, s.shop.Addresses(userID(c)))
}

func (s *Server) addAddress(c echo.Context) error {
	var req Address
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return sendResult(c, http.StatusCreated, s.shop.AddAddress(userID(c), req))
}

func (s *Server) deleteAddress(c echo.Context) error {
	if err := s.shop.DeleteAddress(userID(c), c.Param("id")); err != nil {
		return err
	}
	return sendResult(c, http.StatusOK, nil)
}
