package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/hanifmaulana/tokokita/api/background"
	"github.com/hanifmaulana/tokokita/api/middleware"
	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/config"
	"github.com/hanifmaulana/tokokita/core/auth"
	"github.com/hanifmaulana/tokokita/core/cart"
	"github.com/hanifmaulana/tokokita/core/category"
	"github.com/hanifmaulana/tokokita/core/content"
	"github.com/hanifmaulana/tokokita/core/order"
	"github.com/hanifmaulana/tokokita/core/product"
	"github.com/hanifmaulana/tokokita/core/shipping"
	"github.com/hanifmaulana/tokokita/core/size"
	"github.com/hanifmaulana/tokokita/core/user"
	"github.com/hanifmaulana/tokokita/database"
	"github.com/hanifmaulana/tokokita/media"
	"github.com/hanifmaulana/tokokita/pubsub"
	"github.com/hanifmaulana/tokokita/rate"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	Session          *scs.SessionManager
	Background       *background.Background
	Broker           pubsub.Broker
	Uploader         media.Service
	Providers        map[string]auth.Provider
	LoginRedirectURL string
	Shop             config.Shop
	MediaMaxBytes    int64
	ExpirationWindow time.Duration
	Limiter          *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Metrics())
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	admin := auth.Admin(cfg.Session)
	limited := middleware.RateLimit(cfg.Limiter)

	a.Router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	health := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := database.StatusCheck(ctx, cfg.DB); err != nil {
			return weberr.NewError(err, "database not ready", http.StatusServiceUnavailable)
		}
		return web.Respond(ctx, w, struct {
			Status string `json:"status"`
		}{"ok"}, http.StatusOK)
	}
	a.Handle(http.MethodGet, "/health", health)

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))
	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Session, cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Session, cfg.Providers, cfg.LoginRedirectURL))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users/current/addresses", user.HandleListAddresses(cfg.DB), authen)
	a.Handle(http.MethodPost, "/users/current/addresses", user.HandleCreateAddress(cfg.DB), authen)
	a.Handle(http.MethodPut, "/users/current/addresses/{id}", user.HandleUpdateAddress(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/users/current/addresses/{id}", user.HandleDeleteAddress(cfg.DB), authen)

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/products/{id}", product.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/categories", category.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/categories", category.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/categories/{id}", category.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/categories/{id}", category.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/sizes", size.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/sizes", size.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/sizes/{id}", size.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/sizes/{id}", size.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/contents/home", content.HandleListHome(cfg.DB))
	a.Handle(http.MethodPost, "/contents/home", content.HandleCreateHome(cfg.DB), admin)
	a.Handle(http.MethodPut, "/contents/home/{id}", content.HandleUpdateHome(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/contents/home/{id}", content.HandleDeleteHome(cfg.DB), admin)

	a.Handle(http.MethodGet, "/testimonials", content.HandleListTestimonials(cfg.DB, true))
	a.Handle(http.MethodGet, "/admin/testimonials", content.HandleListTestimonials(cfg.DB, false), admin)
	a.Handle(http.MethodPost, "/testimonials", content.HandleCreateTestimonial(cfg.DB), admin)
	a.Handle(http.MethodPut, "/testimonials/{id}", content.HandleUpdateTestimonial(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/testimonials/{id}", content.HandleDeleteTestimonial(cfg.DB), admin)

	a.Handle(http.MethodGet, "/gallery", content.HandleListGallery(cfg.DB))
	a.Handle(http.MethodPost, "/gallery", content.HandleCreateGalleryItem(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/gallery/{id}", content.HandleDeleteGalleryItem(cfg.DB), admin)

	a.Handle(http.MethodGet, "/blog", content.HandleListBlogPosts(cfg.DB, true))
	a.Handle(http.MethodGet, "/admin/blog", content.HandleListBlogPosts(cfg.DB, false), admin)
	a.Handle(http.MethodGet, "/blog/{id}", content.HandleShowBlogPost(cfg.DB))
	a.Handle(http.MethodPost, "/blog", content.HandleCreateBlogPost(cfg.DB), admin)
	a.Handle(http.MethodPut, "/blog/{id}", content.HandleUpdateBlogPost(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/blog/{id}", content.HandleDeleteBlogPost(cfg.DB), admin)

	a.Handle(http.MethodGet, "/settings", content.HandleShowSettings(cfg.Shop))

	a.Handle(http.MethodGet, "/shipping-rates", shipping.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/shipping-rates", shipping.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/shipping-rates/{id}", shipping.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/shipping-rates/{id}", shipping.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.DB), authen)
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleDeleteItem(cfg.DB), authen)

	a.Handle(http.MethodPost, "/media", media.HandleUpload(cfg.Uploader, cfg.MediaMaxBytes), authen, limited)

	a.Handle(http.MethodPost, "/orders", order.HandleCheckout(cfg.DB, cfg.Broker, cfg.Background, cfg.ExpirationWindow), authen, limited)
	a.Handle(http.MethodGet, "/orders", order.HandleListOwn(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders/stream", order.HandleStreamOwn(cfg.DB, cfg.Broker), authen)
	a.Handle(http.MethodGet, "/orders/track/{ref}", order.HandleTrack(cfg.DB))
	a.Handle(http.MethodGet, "/orders/{ref}/whatsapp", order.HandleWhatsApp(cfg.DB, cfg.Shop.WhatsAppNumber), authen)

	a.Handle(http.MethodGet, "/admin/orders", order.HandleListAll(cfg.DB), admin)
	a.Handle(http.MethodGet, "/admin/orders/stream", order.HandleStreamAll(cfg.DB, cfg.Broker), admin)
	a.Handle(http.MethodPut, "/admin/orders/{ref}/delivery", order.HandleUpdateDelivery(cfg.DB, cfg.Broker, cfg.Background), admin)
	a.Handle(http.MethodPut, "/admin/orders/{ref}/payment", order.HandleUpdatePayment(cfg.DB, cfg.Broker, cfg.Background), admin)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
