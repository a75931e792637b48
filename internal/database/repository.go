package database

// Repository bundles the SQL repositories that share one DB.
type Repository struct {
	db            *DB
	tasks         *TaskRepo
	projects      *ProjectRepo
	users         *UserRepo
	comments      *CommentRepo
	notifications *NotificationRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *DB) *Repository {
	return &Repository{
		db:            db,
		tasks:         &TaskRepo{db: db},
		projects:      &ProjectRepo{db: db},
		users:         &UserRepo{db: db},
		comments:      &CommentRepo{db: db},
		notifications: &NotificationRepo{db: db},
	}
}

func (r *Repository) Tasks() TaskRepository { return r.tasks }
func (r *Repository) Projects() ProjectRepository { return r.projects }
func (r *Repository) Users() UserRepository { return r.users }
func (r *Repository) Comments() CommentRepository { return r.comments }
func (r *Repository) Notifications() NotificationRepository { return r.notifications }

// DB returns the underlying pool
func (r *Repository) DB() *DB {
	return r.db
}

// Compile-time verification that the SQL repositories satisfy the contracts
var (
	_ DataStore              = (*Repository)(nil)
	_ TaskRepository         = (*TaskRepo)(nil)
	_ ProjectRepository      = (*ProjectRepo)(nil)
	_ UserRepository         = (*UserRepo)(nil)
	_ CommentRepository      = (*CommentRepo)(nil)
	_ NotificationRepository = (*NotificationRepo)(nil)
)
