/*
Package auth is for authentication and authorization. It contains database interfaces (DBUser, DBGroup), core types (User, Group, Role) and the glue between them.

Roles

Every user account carries exactly one role: reader, editor or journalist. The role is assigned at registration and never changes afterwards. What each role may do is decided by the core package's policies; this package only stores and reports the role.

Role Groups

Each role has a group of the same name. EnsureRoleGroup joins a user to their role group once, at registration. The step is idempotent, so calling it again is harmless.
*/
package auth
