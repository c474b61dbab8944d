package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/tim3-dev/availability-manager/backend/internal/config"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		// 平台用户管理只开放给后台管理员
		r.Route("/users", func(r chi.Router) {
			r.Use(h.requireStaff)
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.CreateAccount)
			r.Get("/", h.GetMyAccounts)

			r.Route("/{accountID}", func(r chi.Router) {
				r.Use(h.membership)
				r.Get("/", h.GetAccountInfo)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", h.GetAccountMembers)
					r.With(h.RequiredMembershipRole([]domain.MembershipRole{domain.RoleOwner, domain.RoleManager})).Post("/", h.AddAccountMember)
				})

				r.Route("/availability/{month}", func(r chi.Router) {
					r.Use(h.month)
					r.Get("/", h.GetMyMonthAvailability)

					// 修改可用状态前需要确认本人在职且该月份没有被锁定
					r.Group(func(r chi.Router) {
						r.Use(h.myInfo)
						r.Use(h.preventInactiveUser)
						r.Use(h.preventLockedMonth)
						r.Put("/", h.SaveMyAvailability)
						r.Post("/copy-week", h.CopyFirstWeek)
					})

					// 经理能查看账户内其他成员的提交情况
					r.With(h.RequiredMembershipRole([]domain.MembershipRole{domain.RoleOwner, domain.RoleManager})).With(h.userInfo).Get("/users/{id}", h.GetMemberMonthAvailability)

					r.Get("/lock", h.GetMonthLock)
					r.With(h.myInfo).With(h.RequiredMembershipRole([]domain.MembershipRole{domain.RoleOwner, domain.RoleManager})).Put("/lock", h.SetMonthLock)
				})
			})
		})
	})
}
