package auth

type DBGroup interface {
	Id() int
	Name() string
	HasMember(u DBUser) (bool, error)
	Members() (map[int]interface{}, error)
}

type GroupDB interface {
	GetGroupByName(name string) (DBGroup, error)
	GetGroupsOf(u DBUser) ([]DBGroup, error)
	InsertGroup(name string) error
	Join(g DBGroup, u DBUser) error
	Leave(g DBGroup, u DBUser) error
}
