package sqlinline

const QSelectUserByEmail = `--sql 2a993edc-8baa-4077-a40a-9f96b4fafc73
select id::text, email, name, password_hash, created_at
from users
where email = $1::text;
`

const QInsertUser = `--sql 6415453c-c463-4fa7-a1ee-850c078d90e1
insert into users(email, name, password_hash)
values ($1::text, $2::text, $3::text)
returning id::text, email, name, password_hash, created_at;
`
