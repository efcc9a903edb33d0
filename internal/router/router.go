package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	blobmem "petverse/internal/adapters/blob/memory"
	pendingmem "petverse/internal/adapters/pending/memory"
	pendingredis "petverse/internal/adapters/pending/redis"
	mem "petverse/internal/adapters/storage/memory"
	pg "petverse/internal/adapters/storage/postgres"
	"petverse/internal/domain/adoptions"
	"petverse/internal/domain/community"
	"petverse/internal/domain/donations"
	"petverse/internal/domain/lostfound"
	"petverse/internal/domain/notifications"
	"petverse/internal/domain/pets"
	"petverse/internal/domain/profiles"
	"petverse/internal/domain/signup"
	"petverse/internal/domain/uploads"
	"petverse/internal/domain/volunteers"
	"petverse/internal/middleware"
	"petverse/internal/platform/logger"
	"petverse/internal/ports/auth"
	"petverse/internal/ports/blob"
	"petverse/internal/ports/mail"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
)

type Options struct {
	Verifier   auth.Verifier         // puede ser nil (modo dev con headers X-Debug-*)
	Identities auth.IdentityProvider // puede ser nil (signup genera ids locales)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: pending signups en Redis. Si no, in-memory.
	Redis *goredis.Client

	Mailer mail.Mailer // puede ser nil (se descartan los envíos)
	Blob   blob.Store  // puede ser nil (uploads responde 503)

	Log    logger.Logger
	OTPTTL time.Duration
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			if opened, err := pg.Open(dsn); err == nil {
				db = opened
			}
		}
	}

	var (
		profilesRepo  profiles.Repository
		petsRepo      pets.Repository
		adoptionsRepo adoptions.Repository
		lostfoundRepo lostfound.Repository
		donationsRepo donations.Repository
		volAppsRepo   volunteers.ApplicationRepository
		volEventsRepo volunteers.EventRepository
		volRegsRepo   volunteers.RegistrationRepository
		communityRepo community.Repository
		noticesRepo   notifications.Repository
	)

	if db != nil {
		profilesRepo = pg.NewProfilesRepo(db)
		petsRepo = pg.NewPetsRepo(db)
		adoptionsRepo = pg.NewAdoptionsRepo(db)
		lostfoundRepo = pg.NewLostFoundRepo(db)
		donationsRepo = pg.NewDonationsRepo(db)
		volAppsRepo = pg.NewVolunteerAppsRepo(db)
		volEventsRepo = pg.NewVolunteerEventsRepo(db)
		volRegsRepo = pg.NewVolunteerRegsRepo(db)
		communityRepo = pg.NewCommunityRepo(db)
		noticesRepo = pg.NewNotificationsRepo(db)
	} else {
		profilesRepo = mem.NewProfilesRepo()
		petsRepo = mem.NewPetsRepo()
		adoptionsRepo = mem.NewAdoptionsRepo()
		lostfoundRepo = mem.NewLostFoundRepo()
		donationsRepo = mem.NewDonationsRepo()
		volAppsRepo = mem.NewVolunteerAppsRepo()
		volEventsRepo = mem.NewVolunteerEventsRepo()
		volRegsRepo = mem.NewVolunteerRegsRepo()
		communityRepo = mem.NewCommunityRepo()
		noticesRepo = mem.NewNotificationsRepo()
	}

	var pendingStore signup.PendingStore
	if opts.Redis != nil {
		pendingStore = pendingredis.NewStore(opts.Redis)
	} else {
		pendingStore = pendingmem.NewStore()
	}

	blobStore := opts.Blob
	if blobStore == nil && db == nil {
		// Modo dev all-in-memory: las imágenes también van a memoria.
		blobStore = blobmem.New()
	}

	// Services por módulo
	profilesSvc := profiles.NewService(profilesRepo)
	petsSvc := pets.NewService(petsRepo, blobStore, log)
	noticesSvc := notifications.NewService(noticesRepo)
	communitySvc := community.NewService(communityRepo)
	adoptionsSvc := adoptions.NewService(adoptionsRepo, petsSvc, noticesSvc, log)
	lostfoundSvc := lostfound.NewService(lostfoundRepo, communitySvc, opts.Mailer, log)
	donationsSvc := donations.NewService(donationsRepo, noticesSvc, log)
	volunteersSvc := volunteers.NewService(volAppsRepo, volEventsRepo, volRegsRepo, opts.Mailer, log)
	signupSvc := signup.NewService(signup.Options{
		Store:      pendingStore,
		Identities: opts.Identities,
		Profiles:   profilesSvc,
		Mailer:     opts.Mailer,
		Log:        log,
		TTL:        opts.OTPTTL,
	})

	// Rutas por módulo
	signup.RegisterRoutes(r, signupSvc)
	profiles.RegisterRoutes(r, profilesSvc)
	pets.RegisterRoutes(r, petsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	lostfound.RegisterRoutes(r, lostfoundSvc)
	donations.RegisterRoutes(r, donationsSvc)
	volunteers.RegisterRoutes(r, volunteersSvc)
	community.RegisterRoutes(r, communitySvc)
	notifications.RegisterRoutes(r, noticesSvc)
	uploads.RegisterRoutes(r, blobStore)

	return r
}
